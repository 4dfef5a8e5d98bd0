package models

import "time"

// Submission statuses.
const (
	SubmissionStatusPending = "pending"
	SubmissionStatusGraded  = "graded"
)

// AI originality check verdicts.
const (
	AICheckPassed  = "passed"
	AICheckWarning = "warning"
	AICheckFailed  = "failed"
)

// Submission records a student's attempt at a task.
type Submission struct {
	ID          string    `json:"id"`
	StudentID   int64     `json:"studentId"`
	CourseID    string    `json:"courseId"`
	LessonID    int       `json:"lessonId"`
	TaskID      int       `json:"taskId"`
	Code        string    `json:"code"`
	Originality int       `json:"originality"`
	AICheck     string    `json:"aiCheck"`
	Score       int       `json:"score"`
	Feedback    string    `json:"feedback"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

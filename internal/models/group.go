package models

import "time"

// Group is a cohort of students, optionally led by a teacher.
type Group struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	TeacherID  *int64    `json:"teacherId,omitempty"`
	StudentIDs []int64   `json:"studentIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TeacherAssignment binds a teacher to a subject for a specific group.
type TeacherAssignment struct {
	ID        int64     `json:"id"`
	TeacherID int64     `json:"teacherId"`
	SubjectID string    `json:"subjectId"`
	GroupID   int64     `json:"groupId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Lesson assignment statuses.
const (
	LessonAssignmentStatusScheduled = "scheduled"
	LessonAssignmentStatusActive    = "active"
	LessonAssignmentStatusClosed    = "closed"
)

// LessonAssignment schedules a lesson for a group with a due date.
type LessonAssignment struct {
	ID        int64     `json:"id"`
	CourseID  string    `json:"courseId"`
	LessonID  int       `json:"lessonId"`
	GroupID   int64     `json:"groupId"`
	DueDate   time.Time `json:"dueDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// LessonMaterial is an uploaded file attached to a lesson. The raw bytes are
// stored separately from the metadata collection.
type LessonMaterial struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"courseId"`
	LessonID    int       `json:"lessonId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedBy  int64     `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

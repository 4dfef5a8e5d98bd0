package dto

// SubmitCodeRequest is the payload for a student task submission.
type SubmitCodeRequest struct {
	CourseID string `json:"courseId" validate:"required,min=1"`
	LessonID int    `json:"lessonId" validate:"required,gt=0"`
	TaskID   int    `json:"taskId" validate:"required,gt=0"`
	Code     string `json:"code" validate:"required,min=1"`
}

// GradeSubmissionRequest is the payload a teacher sends when grading.
type GradeSubmissionRequest struct {
	Score    int    `json:"score" validate:"gte=0,lte=100"`
	Feedback string `json:"feedback"`
}

// MarkSectionRequest marks one lesson section as done.
type MarkSectionRequest struct {
	CourseID string `json:"courseId" validate:"required,min=1"`
	LessonID int    `json:"lessonId" validate:"required,gt=0"`
	Section  string `json:"section" validate:"required,oneof=video theory practice"`
}

// SaveGradeRequest records a grade for a lesson.
type SaveGradeRequest struct {
	CourseID string `json:"courseId" validate:"required,min=1"`
	LessonID int    `json:"lessonId" validate:"required,gt=0"`
	Grade    int    `json:"grade"`
	MaxGrade int    `json:"maxGrade" validate:"required"`
}

// JournalEntryRequest is a shallow patch merged into a journal entry.
type JournalEntryRequest struct {
	CourseID string                 `json:"courseId" validate:"required,min=1"`
	LessonID int                    `json:"lessonId" validate:"required,gt=0"`
	Fields   map[string]interface{} `json:"fields" validate:"required,min=1"`
}

// GenerateTasksRequest asks the AI generator for practice tasks.
type GenerateTasksRequest struct {
	Topic      string `json:"topic" validate:"required,min=2"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Language   string `json:"language"`
	Count      int    `json:"count" validate:"omitempty,gte=1,lte=10"`
}

// RunCodeRequest carries source code for the practice runner.
type RunCodeRequest struct {
	Code string `json:"code"`
}

package dto

import (
	"time"

	"github.com/educode-platform/educode-api/internal/models"
)

// CourseRequest represents the payload for creating or replacing a course.
type CourseRequest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title" validate:"required,min=1"`
	Description string          `json:"description"`
	TeacherID   *int64          `json:"teacherId"`
	Category    string          `json:"category"`
	Status      string          `json:"status" validate:"omitempty,oneof=draft published archived"`
	Lessons     []LessonRequest `json:"lessons" validate:"dive"`
}

// LessonRequest represents an embedded lesson payload.
type LessonRequest struct {
	Title       string        `json:"title" validate:"required,min=1"`
	Description string        `json:"description"`
	Content     string        `json:"content"`
	VideoURL    string        `json:"videoUrl"`
	Tasks       []TaskRequest `json:"tasks" validate:"dive"`
}

// TaskRequest represents an embedded task payload.
type TaskRequest struct {
	Title          string `json:"title" validate:"required,min=1"`
	Description    string `json:"description"`
	InitialCode    string `json:"initialCode"`
	ExpectedOutput string `json:"expectedOutput"`
}

// ToModel converts the course payload. Lesson and task ids are assigned
// sequentially in payload order.
func (r CourseRequest) ToModel() models.Course {
	course := models.Course{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		TeacherID:   r.TeacherID,
		Category:    r.Category,
		Status:      r.Status,
	}
	for i, lesson := range r.Lessons {
		course.Lessons = append(course.Lessons, lesson.toModel(i+1))
	}
	return course
}

// ToLessonModel converts a standalone lesson payload. The id is left at zero
// so the curriculum service can number it after the existing lessons.
func (r LessonRequest) ToLessonModel() models.Lesson {
	return r.toModel(0)
}

func (r LessonRequest) toModel(id int) models.Lesson {
	lesson := models.Lesson{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		VideoURL:    r.VideoURL,
	}
	for i, task := range r.Tasks {
		lesson.Tasks = append(lesson.Tasks, models.Task{
			ID:             i + 1,
			Title:          task.Title,
			Description:    task.Description,
			InitialCode:    task.InitialCode,
			ExpectedOutput: task.ExpectedOutput,
		})
	}
	return lesson
}

// GroupRequest represents the payload for creating a group.
type GroupRequest struct {
	Name       string  `json:"name" validate:"required,min=1"`
	TeacherID  *int64  `json:"teacherId"`
	StudentIDs []int64 `json:"studentIds"`
}

// GroupUpdateRequest is a shallow patch for a group.
type GroupUpdateRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=1"`
	TeacherID  *int64   `json:"teacherId"`
	StudentIDs *[]int64 `json:"studentIds"`
}

// TeacherAssignmentRequest binds a teacher to a subject and group.
type TeacherAssignmentRequest struct {
	TeacherID int64  `json:"teacherId" validate:"required,gt=0"`
	SubjectID string `json:"subjectId" validate:"required,min=1"`
	GroupID   int64  `json:"groupId" validate:"required,gt=0"`
}

// LessonAssignmentRequest schedules a lesson for a group.
type LessonAssignmentRequest struct {
	CourseID string    `json:"courseId" validate:"required,min=1"`
	LessonID int       `json:"lessonId" validate:"required,gt=0"`
	GroupID  int64     `json:"groupId" validate:"required,gt=0"`
	DueDate  time.Time `json:"dueDate" validate:"required"`
}

// LessonAssignmentUpdateRequest is a shallow patch for a schedule entry.
type LessonAssignmentUpdateRequest struct {
	DueDate *time.Time `json:"dueDate"`
	Status  *string    `json:"status" validate:"omitempty,oneof=scheduled active closed"`
}

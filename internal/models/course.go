package models

// Course statuses.
const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
	CourseStatusArchived  = "archived"
)

// Task is a single practice exercise inside a lesson.
type Task struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	InitialCode    string `json:"initialCode"`
	ExpectedOutput string `json:"expectedOutput"`
}

// Lesson is one unit of a course. Lessons are ordered by ID starting at 1;
// the order drives the unlock cascade.
type Lesson struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl"`
	Tasks       []Task `json:"tasks"`
}

// Course is a subject with its lessons embedded inline. Courses are mutated
// by whole-object replacement.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TeacherID   *int64   `json:"teacherId,omitempty"`
	Category    string   `json:"category"`
	Status      string   `json:"status"`
	Lessons     []Lesson `json:"lessons"`
}

// Lesson returns the embedded lesson with the given id, if any.
func (c Course) Lesson(id int) (Lesson, bool) {
	for _, lesson := range c.Lessons {
		if lesson.ID == id {
			return lesson, true
		}
	}
	return Lesson{}, false
}

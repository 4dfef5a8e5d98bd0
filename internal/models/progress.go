package models

import "time"

// Lesson sections a student works through.
const (
	SectionVideo    = "video"
	SectionTheory   = "theory"
	SectionPractice = "practice"
)

// SectionFlags tracks which parts of a lesson the student has finished.
type SectionFlags struct {
	Video    bool `json:"video"`
	Theory   bool `json:"theory"`
	Practice bool `json:"practice"`
}

// AllDone reports whether every section is finished.
func (f SectionFlags) AllDone() bool {
	return f.Video && f.Theory && f.Practice
}

// LessonProgress is the per-user, per-lesson unlock and completion state.
// Lesson 1 of any course is unlocked by default; later lessons stay locked
// until their predecessor completes.
type LessonProgress struct {
	Completed         bool         `json:"completed"`
	Unlocked          bool         `json:"unlocked"`
	SectionsCompleted SectionFlags `json:"sectionsCompleted"`
}

// Grade statuses. A grade passes at 70 percent or better.
const (
	GradeStatusPassed = "passed"
	GradeStatusFailed = "failed"

	GradePassThreshold = 70
)

// GradeRecord is the stored outcome of a graded lesson.
type GradeRecord struct {
	Grade       int       `json:"grade"`
	MaxGrade    int       `json:"maxGrade"`
	Percentage  int       `json:"percentage"`
	Status      string    `json:"status"`
	CompletedAt time.Time `json:"completedAt"`
}

// JournalEntry is a free-form per-lesson record. Writes are shallow merges
// over the previous entry, never replacements.
type JournalEntry map[string]interface{}

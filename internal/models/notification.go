package models

import "time"

// Notification types surfaced to users.
const (
	NotificationTypeSubmission     = "submission"
	NotificationTypeGrade          = "grade"
	NotificationTypeLessonUnlocked = "lesson_unlocked"
	NotificationTypeCourseUnlocked = "course_unlocked"
)

// Notification is a single event in a user's feed. Feeds are kept
// most-recent-first: new notifications are prepended.
type Notification struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CourseID  string    `json:"courseId,omitempty"`
	LessonID  int       `json:"lessonId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Read      bool      `json:"read"`
}

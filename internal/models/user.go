package models

import "time"

// Roles assignable to platform accounts.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleUser    = "user"
)

// User is an EduCode account. PasswordHash holds a bcrypt digest; plaintext
// passwords never reach the store.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	TeacherID    *int64    `json:"teacherId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitized returns a copy safe to hand to API consumers.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

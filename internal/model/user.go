package model

import "time"

const (
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// Session is the single authenticated-user descriptor held in client storage
type Session struct {
	Type  string `json:"type"`
	Email string `json:"email"`
}

// User represents an account in the system
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Do not expose password hash in JSON responses
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

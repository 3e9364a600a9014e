package domain

import (
	"strings"
	"time"
)

const maxUserNameLength = 100

// User is a profile that can be attached to events. Names are unique.
// Users carry no timezone or audit behavior of their own.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate enforces the user name constraints (present, at most 100 chars).
func (u *User) Validate() error {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "user name is required"}
	}
	if len(name) > maxUserNameLength {
		return &ValidationError{Field: "name", Message: "name cannot exceed 100 characters"}
	}
	return nil
}

package domain

import (
	"time"
)

// Role mirrors the role enum in the schema.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleLecturer Role = "lecturer"
	RoleStudent  Role = "student"
)

// ParseRole validates a raw string against the known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleLecturer, RoleStudent:
		return Role(s), nil
	}
	return "", ErrForbidden.WithMessage("unknown role " + s)
}

// Student is the slice of the users table the matching core needs.
type Student struct {
	ID            int64  `json:"user_id"`
	FullName      string `json:"full_name"`
	StudentNumber string `json:"student_number"`
	Email         string `json:"email,omitempty"`
}

// Enrollment ties a student to a module. Enumeration order (by enrollment id)
// is load-bearing: recognition tie-breaking keeps the first-seen top score.
type Enrollment struct {
	ID         int64     `json:"enrollment_id"`
	StudentID  int64     `json:"student_id"`
	ModuleID   int64     `json:"module_id"`
	EnrolledOn time.Time `json:"enrollment_date"`

	// Student display fields, joined in by the repository.
	StudentName   string `json:"student_name"`
	StudentNumber string `json:"student_number"`
}

// FacialReference points at a student's stored enrollment image. At most one
// per student; descriptors are recomputed from the image, never persisted.
type FacialReference struct {
	ID         int64     `json:"facial_id"`
	StudentID  int64     `json:"student_id"`
	ImagePath  string    `json:"image_path"`
	UploadedAt time.Time `json:"uploaded_at"`
}

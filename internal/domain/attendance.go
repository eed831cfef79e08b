package domain

import (
	"time"
)

// AttendanceStatus mirrors the attendance_status enum in the schema.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// ParseAttendanceStatus validates a raw string at the boundary instead of
// letting unknown values flow into the database.
func ParseAttendanceStatus(s string) (AttendanceStatus, error) {
	switch AttendanceStatus(s) {
	case AttendancePresent, AttendanceAbsent:
		return AttendanceStatus(s), nil
	}
	return "", ErrInvalidStatus.WithMessage("invalid attendance status " + s)
}

// AttendanceRecord is one student's mark for one class session. The schema
// enforces at most one record per (student, class session) pair.
type AttendanceRecord struct {
	ID        int64            `json:"attendance_id"`
	StudentID int64            `json:"student_id"`
	ClassID   int64            `json:"class_id"`
	Status    AttendanceStatus `json:"attendance_status"`
	Timestamp time.Time        `json:"timestamp"`
	Notes     string           `json:"notes,omitempty"`
}

// Recognition is the structured outcome of a successful face-match request.
// Similarity is expressed as a percentage rounded to two decimals.
type Recognition struct {
	StudentID     int64   `json:"student_id"`
	StudentName   string  `json:"student_name"`
	StudentNumber string  `json:"student_number"`
	Similarity    float64 `json:"similarity"`
	AlreadyMarked bool    `json:"already_marked"`
	ClassInfo     string  `json:"class_info"`
	Message       string  `json:"message"`
}

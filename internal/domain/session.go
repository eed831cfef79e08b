package domain

import (
	"fmt"
	"time"
)

// ClassType mirrors the class_type enum in the schema.
type ClassType string

const (
	ClassTypeLecture   ClassType = "lecture"
	ClassTypeTutorial  ClassType = "tutorial"
	ClassTypePractical ClassType = "practical"
)

// ParseClassType validates a raw string against the known class types.
func ParseClassType(s string) (ClassType, error) {
	switch ClassType(s) {
	case ClassTypeLecture, ClassTypeTutorial, ClassTypePractical:
		return ClassType(s), nil
	}
	return "", fmt.Errorf("unknown class type %q", s)
}

// ClassSession is one scheduled occurrence of a module's class. ClassDate holds
// the calendar day; StartTime and EndTime are offsets from midnight, so the
// wall-clock window is resolved against the caller's timezone at check time.
type ClassSession struct {
	ID         int64         `json:"class_id"`
	ModuleID   int64         `json:"module_id"`
	ModuleCode string        `json:"module_code"`
	LecturerID int64         `json:"-"`
	ClassType  ClassType     `json:"class_type"`
	Location   string        `json:"location,omitempty"`
	ClassDate  time.Time     `json:"class_date"`
	StartTime  time.Duration `json:"-"`
	EndTime    time.Duration `json:"-"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// StartsAt combines the class date with the start offset in loc.
func (s *ClassSession) StartsAt(loc *time.Location) time.Time {
	return s.midnight(loc).Add(s.StartTime)
}

// EndsAt combines the class date with the end offset in loc.
func (s *ClassSession) EndsAt(loc *time.Location) time.Time {
	return s.midnight(loc).Add(s.EndTime)
}

// HasEnded reports whether now is strictly after the session's end. The stored
// end time is interpreted in now's location, not UTC.
func (s *ClassSession) HasEnded(now time.Time) bool {
	return now.After(s.EndsAt(now.Location()))
}

// IsActive reports whether now falls inside the session window, both ends
// inclusive. Note there is no standalone "not yet started" rejection: the
// recognition flow only ever gates on HasEnded.
func (s *ClassSession) IsActive(now time.Time) bool {
	loc := now.Location()
	return !now.Before(s.StartsAt(loc)) && !now.After(s.EndsAt(loc))
}

// Info renders the session the way operators refer to it in messages,
// e.g. "CS101 on 2026-03-02 at 09:00".
func (s *ClassSession) Info() string {
	return fmt.Sprintf("%s on %s at %s",
		s.ModuleCode,
		s.ClassDate.Format("2006-01-02"),
		formatClock(s.StartTime),
	)
}

func (s *ClassSession) midnight(loc *time.Location) time.Time {
	y, m, d := s.ClassDate.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func formatClock(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}

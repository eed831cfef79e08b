package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanAudit is one row per recognition attempt, written best-effort for
// after-the-fact review of scanner behaviour. It never influences the outcome.
type ScanAudit struct {
	ID               uuid.UUID `json:"id"`
	ClassID          int64     `json:"class_id"`
	MatchedStudentID *int64    `json:"matched_student_id,omitempty"`
	Similarity       float64   `json:"similarity"`
	Outcome          string    `json:"outcome"`
	LatencyMs        int64     `json:"latency_ms"`
	CreatedAt        time.Time `json:"created_at"`
}

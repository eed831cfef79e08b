package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuskit/rollcall/internal/domain"
)

type ScanAuditRepository struct {
	pool PgxPool
}

func NewScanAuditRepository(pool PgxPool) *ScanAuditRepository {
	return &ScanAuditRepository{pool: pool}
}

func (r *ScanAuditRepository) Create(ctx context.Context, audit *domain.ScanAudit) error {
	query := `
		INSERT INTO scan_audits (id, class_id, matched_student_id, similarity, outcome, latency_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		audit.ID,
		audit.ClassID,
		audit.MatchedStudentID,
		audit.Similarity,
		audit.Outcome,
		audit.LatencyMs,
	).Scan(&audit.CreatedAt)

	if err != nil {
		return fmt.Errorf("create scan audit: %w", err)
	}
	return nil
}

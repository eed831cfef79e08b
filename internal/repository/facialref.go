package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/rollcall/internal/domain"
)

type FacialReferenceRepository struct {
	pool PgxPool
}

func NewFacialReferenceRepository(pool PgxPool) *FacialReferenceRepository {
	return &FacialReferenceRepository{pool: pool}
}

func (r *FacialReferenceRepository) GetByStudent(ctx context.Context, studentID int64) (*domain.FacialReference, error) {
	query := `
		SELECT facial_id, student_id, image_path, uploaded_at
		FROM facial_data
		WHERE student_id = $1
	`

	var ref domain.FacialReference
	err := r.pool.QueryRow(ctx, query, studentID).Scan(
		&ref.ID,
		&ref.StudentID,
		&ref.ImagePath,
		&ref.UploadedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrFacialDataNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get facial reference: %w", err)
	}
	return &ref, nil
}

// Upsert creates the student's facial reference or replaces the existing one,
// refreshing the upload timestamp. At most one reference per student.
func (r *FacialReferenceRepository) Upsert(ctx context.Context, ref *domain.FacialReference) error {
	query := `
		INSERT INTO facial_data (student_id, image_path, uploaded_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (student_id)
		DO UPDATE SET image_path = EXCLUDED.image_path, uploaded_at = NOW()
		RETURNING facial_id, uploaded_at
	`

	err := r.pool.QueryRow(ctx, query, ref.StudentID, ref.ImagePath).
		Scan(&ref.ID, &ref.UploadedAt)
	if err != nil {
		return fmt.Errorf("upsert facial reference: %w", err)
	}
	return nil
}

// ListStudentIDs filters the given students down to those with a stored
// facial reference.
func (r *FacialReferenceRepository) ListStudentIDs(ctx context.Context, studentIDs []int64) ([]int64, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}

	query := `SELECT student_id FROM facial_data WHERE student_id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("list facial references: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan facial reference: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list facial references: %w", err)
	}
	return ids, nil
}

// CountByStudents reports how many of the given students have a stored
// facial reference.
func (r *FacialReferenceRepository) CountByStudents(ctx context.Context, studentIDs []int64) (int, error) {
	if len(studentIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM facial_data WHERE student_id = ANY($1)`

	var count int
	if err := r.pool.QueryRow(ctx, query, studentIDs).Scan(&count); err != nil {
		return 0, fmt.Errorf("count facial references: %w", err)
	}
	return count, nil
}

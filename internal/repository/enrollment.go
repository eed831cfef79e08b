package repository

import (
	"context"
	"fmt"

	"github.com/campuskit/rollcall/internal/domain"
)

type EnrollmentRepository struct {
	pool PgxPool
}

func NewEnrollmentRepository(pool PgxPool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// ListByModule returns a module's enrollments joined with student display
// fields, ordered by enrollment id. The order is part of the recognition
// contract: equal top scores keep the first-seen candidate.
func (r *EnrollmentRepository) ListByModule(ctx context.Context, moduleID int64) ([]domain.Enrollment, error) {
	query := `
		SELECT e.enrollment_id, e.student_id, e.module_id, e.enrollment_date,
		       u.full_name, COALESCE(u.student_number, '')
		FROM enrollments e
		INNER JOIN users u ON u.user_id = e.student_id
		WHERE e.module_id = $1
		ORDER BY e.enrollment_id
	`

	rows, err := r.pool.Query(ctx, query, moduleID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		err := rows.Scan(
			&e.ID,
			&e.StudentID,
			&e.ModuleID,
			&e.EnrolledOn,
			&e.StudentName,
			&e.StudentNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

func (r *EnrollmentRepository) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	query := `SELECT COUNT(*) FROM enrollments WHERE module_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, moduleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count enrollments: %w", err)
	}
	return count, nil
}

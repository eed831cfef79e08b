package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campuskit/rollcall/internal/domain"
)

type StudentRepository struct {
	pool PgxPool
}

func NewStudentRepository(pool PgxPool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	query := `
		SELECT user_id, full_name, COALESCE(student_number, ''), COALESCE(email, '')
		FROM users
		WHERE user_id = $1 AND role = 'student'
	`

	var s domain.Student
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.FullName,
		&s.StudentNumber,
		&s.Email,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return &s, nil
}

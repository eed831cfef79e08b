package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/campuskit/rollcall/internal/domain"
)

type ClassSessionRepository struct {
	pool PgxPool
}

func NewClassSessionRepository(pool PgxPool) *ClassSessionRepository {
	return &ClassSessionRepository{pool: pool}
}

const sessionColumns = `
	c.class_id, c.module_id, m.module_code, c.lecturer_id, c.class_type,
	COALESCE(c.location, ''), c.class_date, c.start_time, c.end_time,
	c.created_at, c.updated_at
`

func (r *ClassSessionRepository) GetByID(ctx context.Context, id int64) (*domain.ClassSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM classes c
		INNER JOIN modules m ON m.module_id = c.module_id
		WHERE c.class_id = $1
	`

	session, err := scanSession(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get class session: %w", err)
	}
	return session, nil
}

// ListByLecturerAndDate returns a lecturer's sessions on one calendar day,
// ordered by start time. The scanner listing builds on this.
func (r *ClassSessionRepository) ListByLecturerAndDate(ctx context.Context, lecturerID int64, day time.Time) ([]domain.ClassSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM classes c
		INNER JOIN modules m ON m.module_id = c.module_id
		WHERE c.lecturer_id = $1 AND c.class_date = $2
		ORDER BY c.start_time
	`

	rows, err := r.pool.Query(ctx, query, lecturerID, day)
	if err != nil {
		return nil, fmt.Errorf("list class sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ClassSession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list class sessions: %w", err)
	}
	return sessions, nil
}

func scanSession(row pgx.Row) (*domain.ClassSession, error) {
	var (
		session    domain.ClassSession
		classType  string
		start, end pgtype.Time
	)

	err := row.Scan(
		&session.ID,
		&session.ModuleID,
		&session.ModuleCode,
		&session.LecturerID,
		&classType,
		&session.Location,
		&session.ClassDate,
		&start,
		&end,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.ClassType, err = domain.ParseClassType(classType)
	if err != nil {
		return nil, err
	}
	session.StartTime = time.Duration(start.Microseconds) * time.Microsecond
	session.EndTime = time.Duration(end.Microseconds) * time.Microsecond

	return &session, nil
}

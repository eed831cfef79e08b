package repository

import (
	"context"
	"fmt"

	"github.com/campuskit/rollcall/internal/domain"
)

type AttendanceRepository struct {
	pool PgxPool
}

func NewAttendanceRepository(pool PgxPool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func (r *AttendanceRepository) Exists(ctx context.Context, studentID, classID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM attendance WHERE student_id = $1 AND class_id = $2
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, studentID, classID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return exists, nil
}

// Create inserts one attendance record. The schema's UNIQUE (student_id,
// class_id) constraint makes concurrent duplicate inserts lose atomically;
// that outcome surfaces as ErrAttendanceExists for the caller to absorb.
func (r *AttendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance (student_id, class_id, attendance_status, timestamp, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING attendance_id
	`

	err := r.pool.QueryRow(ctx, query,
		rec.StudentID,
		rec.ClassID,
		string(rec.Status),
		rec.Timestamp,
		rec.Notes,
	).Scan(&rec.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAttendanceExists
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (r *AttendanceRepository) ListByClass(ctx context.Context, classID int64) ([]domain.AttendanceRecord, error) {
	query := `
		SELECT attendance_id, student_id, class_id, attendance_status, timestamp, COALESCE(notes, '')
		FROM attendance
		WHERE class_id = $1
		ORDER BY timestamp
	`

	rows, err := r.pool.Query(ctx, query, classID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var records []domain.AttendanceRecord
	for rows.Next() {
		var rec domain.AttendanceRecord
		var status string
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.ClassID, &status, &rec.Timestamp, &rec.Notes); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		rec.Status = domain.AttendanceStatus(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

func (r *AttendanceRepository) CountByClass(ctx context.Context, classID int64) (int, error) {
	query := `SELECT COUNT(*) FROM attendance WHERE class_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, classID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}

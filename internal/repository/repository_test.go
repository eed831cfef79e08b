package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/rollcall/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func clockTime(h, m int) pgtype.Time {
	return pgtype.Time{
		Microseconds: (int64(h)*3600 + int64(m)*60) * 1_000_000,
		Valid:        true,
	}
}

// ClassSessionRepository tests

func TestClassSessionRepository_GetByID(t *testing.T) {
	now := time.Now()
	classDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		want      *domain.ClassSession
		wantErr   error
	}{
		{
			name: "successful retrieval",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{
					"class_id", "module_id", "module_code", "lecturer_id", "class_type",
					"location", "class_date", "start_time", "end_time", "created_at", "updated_at",
				}).AddRow(
					int64(42), int64(7), "CS101", int64(3), "lecture",
					"Room D204", classDate, clockTime(9, 0), clockTime(11, 0), now, now,
				)

				mock.ExpectQuery(`SELECT (.+) FROM classes c INNER JOIN modules m`).
					WithArgs(int64(42)).
					WillReturnRows(rows)
			},
			want: &domain.ClassSession{
				ID:         42,
				ModuleID:   7,
				ModuleCode: "CS101",
				LecturerID: 3,
				ClassType:  domain.ClassTypeLecture,
				Location:   "Room D204",
				ClassDate:  classDate,
				StartTime:  9 * time.Hour,
				EndTime:    11 * time.Hour,
				CreatedAt:  now,
				UpdatedAt:  now,
			},
		},
		{
			name: "class not found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM classes c INNER JOIN modules m`).
					WithArgs(int64(42)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrClassNotFound,
		},
		{
			name: "database error",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT (.+) FROM classes c INNER JOIN modules m`).
					WithArgs(int64(42)).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.mockSetup(mock)

			repo := NewClassSessionRepository(mock)
			got, err := repo.GetByID(context.Background(), 42)

			if tt.wantErr != nil {
				require.Error(t, err)
				var appErr *domain.AppError
				if errors.As(tt.wantErr, &appErr) {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClassSessionRepository_ListByLecturerAndDate(t *testing.T) {
	mock := newMockPool(t)
	now := time.Now()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"class_id", "module_id", "module_code", "lecturer_id", "class_type",
		"location", "class_date", "start_time", "end_time", "created_at", "updated_at",
	}).
		AddRow(int64(1), int64(7), "CS101", int64(3), "lecture", "", day, clockTime(9, 0), clockTime(11, 0), now, now).
		AddRow(int64(2), int64(8), "CS205", int64(3), "practical", "Lab 2", day, clockTime(14, 0), clockTime(16, 0), now, now)

	mock.ExpectQuery(`WHERE c\.lecturer_id = \$1 AND c\.class_date = \$2 ORDER BY c\.start_time`).
		WithArgs(int64(3), day).
		WillReturnRows(rows)

	repo := NewClassSessionRepository(mock)
	sessions, err := repo.ListByLecturerAndDate(context.Background(), 3, day)

	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "CS101", sessions[0].ModuleCode)
	assert.Equal(t, domain.ClassTypePractical, sessions[1].ClassType)
	assert.Equal(t, 14*time.Hour, sessions[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// EnrollmentRepository tests

func TestEnrollmentRepository_ListByModule_PreservesOrder(t *testing.T) {
	mock := newMockPool(t)
	enrolled := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{
		"enrollment_id", "student_id", "module_id", "enrollment_date", "full_name", "student_number",
	}).
		AddRow(int64(1), int64(101), int64(7), enrolled, "Alice Mokoena", "S001").
		AddRow(int64(2), int64(102), int64(7), enrolled, "Ben Naidoo", "S002").
		AddRow(int64(3), int64(103), int64(7), enrolled, "Chao Li", "S003")

	mock.ExpectQuery(`FROM enrollments e INNER JOIN users u (.+) ORDER BY e\.enrollment_id`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := NewEnrollmentRepository(mock)
	enrollments, err := repo.ListByModule(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, enrollments, 3)
	assert.Equal(t, int64(101), enrollments[0].StudentID)
	assert.Equal(t, int64(102), enrollments[1].StudentID)
	assert.Equal(t, int64(103), enrollments[2].StudentID)
	assert.Equal(t, "Ben Naidoo", enrollments[1].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnrollmentRepository_CountByModule(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	repo := NewEnrollmentRepository(mock)
	count, err := repo.CountByModule(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// FacialReferenceRepository tests

func TestFacialReferenceRepository_GetByStudent(t *testing.T) {
	uploaded := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		want      *domain.FacialReference
		wantErr   error
	}{
		{
			name: "found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"facial_id", "student_id", "image_path", "uploaded_at"}).
					AddRow(int64(5), int64(101), "student_S001.jpg", uploaded)

				mock.ExpectQuery(`FROM facial_data WHERE student_id = \$1`).
					WithArgs(int64(101)).
					WillReturnRows(rows)
			},
			want: &domain.FacialReference{
				ID:         5,
				StudentID:  101,
				ImagePath:  "student_S001.jpg",
				UploadedAt: uploaded,
			},
		},
		{
			name: "not found",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM facial_data WHERE student_id = \$1`).
					WithArgs(int64(101)).
					WillReturnError(pgx.ErrNoRows)
			},
			wantErr: domain.ErrFacialDataNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.mockSetup(mock)

			repo := NewFacialReferenceRepository(mock)
			got, err := repo.GetByStudent(context.Background(), 101)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFacialReferenceRepository_Upsert(t *testing.T) {
	mock := newMockPool(t)
	uploaded := time.Now()

	mock.ExpectQuery(`INSERT INTO facial_data (.+) ON CONFLICT \(student_id\)`).
		WithArgs(int64(101), "student_S001.jpg").
		WillReturnRows(pgxmock.NewRows([]string{"facial_id", "uploaded_at"}).AddRow(int64(5), uploaded))

	repo := NewFacialReferenceRepository(mock)
	ref := &domain.FacialReference{StudentID: 101, ImagePath: "student_S001.jpg"}

	require.NoError(t, repo.Upsert(context.Background(), ref))
	assert.Equal(t, int64(5), ref.ID)
	assert.Equal(t, uploaded, ref.UploadedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFacialReferenceRepository_CountByStudents_Empty(t *testing.T) {
	mock := newMockPool(t)

	repo := NewFacialReferenceRepository(mock)
	count, err := repo.CountByStudents(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// AttendanceRepository tests

func TestAttendanceRepository_Exists(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(101), int64(42)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewAttendanceRepository(mock)
	exists, err := repo.Exists(context.Background(), 101, 42)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_Create(t *testing.T) {
	marked := time.Now()

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO attendance`).
					WithArgs(int64(101), int64(42), "present", marked, "").
					WillReturnRows(pgxmock.NewRows([]string{"attendance_id"}).AddRow(int64(9)))
			},
		},
		{
			name: "duplicate pair maps to ErrAttendanceExists",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO attendance`).
					WithArgs(int64(101), int64(42), "present", marked, "").
					WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "attendance_student_class_key" (SQLSTATE 23505)`))
			},
			wantErr: domain.ErrAttendanceExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.mockSetup(mock)

			repo := NewAttendanceRepository(mock)
			rec := &domain.AttendanceRecord{
				StudentID: 101,
				ClassID:   42,
				Status:    domain.AttendancePresent,
				Timestamp: marked,
			}
			err := repo.Create(context.Background(), rec)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(9), rec.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ScanAuditRepository tests

func TestScanAuditRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	created := time.Now()
	studentID := int64(101)

	mock.ExpectQuery(`INSERT INTO scan_audits`).
		WithArgs(pgxmock.AnyArg(), int64(42), &studentID, 0.82, "marked", int64(120)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	repo := NewScanAuditRepository(mock)
	audit := &domain.ScanAudit{
		ClassID:          42,
		MatchedStudentID: &studentID,
		Similarity:       0.82,
		Outcome:          "marked",
		LatencyMs:        120,
	}

	require.NoError(t, repo.Create(context.Background(), audit))
	assert.NotZero(t, audit.ID)
	assert.Equal(t, created, audit.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

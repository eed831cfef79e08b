package repository

import (
	"context"
	"time"

	"github.com/campuskit/rollcall/internal/domain"
)

// ClassSessionRepositoryInterface defines operations for class session data access
type ClassSessionRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSession, error)
	ListByLecturerAndDate(ctx context.Context, lecturerID int64, day time.Time) ([]domain.ClassSession, error)
}

// EnrollmentRepositoryInterface defines operations for enrollment data access
type EnrollmentRepositoryInterface interface {
	ListByModule(ctx context.Context, moduleID int64) ([]domain.Enrollment, error)
	CountByModule(ctx context.Context, moduleID int64) (int, error)
}

// FacialReferenceRepositoryInterface defines operations for facial reference data access
type FacialReferenceRepositoryInterface interface {
	GetByStudent(ctx context.Context, studentID int64) (*domain.FacialReference, error)
	Upsert(ctx context.Context, ref *domain.FacialReference) error
	ListStudentIDs(ctx context.Context, studentIDs []int64) ([]int64, error)
	CountByStudents(ctx context.Context, studentIDs []int64) (int, error)
}

// AttendanceRepositoryInterface defines operations for attendance data access
type AttendanceRepositoryInterface interface {
	Exists(ctx context.Context, studentID, classID int64) (bool, error)
	Create(ctx context.Context, rec *domain.AttendanceRecord) error
	ListByClass(ctx context.Context, classID int64) ([]domain.AttendanceRecord, error)
	CountByClass(ctx context.Context, classID int64) (int, error)
}

// StudentRepositoryInterface defines operations for student lookup
type StudentRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

// ScanAuditRepositoryInterface defines operations for scan audit logging
type ScanAuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.ScanAudit) error
}

var (
	_ ClassSessionRepositoryInterface    = (*ClassSessionRepository)(nil)
	_ EnrollmentRepositoryInterface      = (*EnrollmentRepository)(nil)
	_ FacialReferenceRepositoryInterface = (*FacialReferenceRepository)(nil)
	_ AttendanceRepositoryInterface      = (*AttendanceRepository)(nil)
	_ StudentRepositoryInterface         = (*StudentRepository)(nil)
	_ ScanAuditRepositoryInterface       = (*ScanAuditRepository)(nil)
)

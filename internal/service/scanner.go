package service

import (
	"context"
	"time"

	"github.com/campuskit/rollcall/internal/domain"
)

type SessionListRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSession, error)
	ListByLecturerAndDate(ctx context.Context, lecturerID int64, day time.Time) ([]domain.ClassSession, error)
}

type EnrollmentListRepositoryInterface interface {
	ListByModule(ctx context.Context, moduleID int64) ([]domain.Enrollment, error)
	CountByModule(ctx context.Context, moduleID int64) (int, error)
}

type FacialReferenceListInterface interface {
	ListStudentIDs(ctx context.Context, studentIDs []int64) ([]int64, error)
	CountByStudents(ctx context.Context, studentIDs []int64) (int, error)
}

type AttendanceListInterface interface {
	ListByClass(ctx context.Context, classID int64) ([]domain.AttendanceRecord, error)
	CountByClass(ctx context.Context, classID int64) (int, error)
}

// ClassOverview is one row of the lecturer's scanner dashboard: a class
// scheduled today that has not yet ended, with readiness counts.
type ClassOverview struct {
	Session         domain.ClassSession `json:"session"`
	EnrolledCount   int                 `json:"enrolled_count"`
	FacialCount     int                 `json:"facial_count"`
	AttendanceCount int                 `json:"attendance_count"`
	IsActive        bool                `json:"is_active"`
}

// RosterEntry is one enrolled student in a class roster, with facial
// registration status and any attendance already recorded.
type RosterEntry struct {
	StudentID     int64                    `json:"student_id"`
	StudentName   string                   `json:"student_name"`
	StudentNumber string                   `json:"student_number"`
	HasFacialData bool                     `json:"has_facial_data"`
	Attendance    *domain.AttendanceRecord `json:"attendance,omitempty"`
}

// ScannerService backs the lecturer-facing views: which classes can be
// scanned right now, and who is expected in each of them.
type ScannerService struct {
	sessions    SessionListRepositoryInterface
	enrollments EnrollmentListRepositoryInterface
	references  FacialReferenceListInterface
	attendance  AttendanceListInterface
}

func NewScannerService(
	sessions SessionListRepositoryInterface,
	enrollments EnrollmentListRepositoryInterface,
	references FacialReferenceListInterface,
	attendance AttendanceListInterface,
) *ScannerService {
	return &ScannerService{
		sessions:    sessions,
		enrollments: enrollments,
		references:  references,
		attendance:  attendance,
	}
}

// ListClasses returns the lecturer's classes scheduled today that have not
// ended yet, ordered by start time.
func (s *ScannerService) ListClasses(ctx context.Context, lecturerID int64) ([]ClassOverview, error) {
	now := time.Now()

	sessions, err := s.sessions.ListByLecturerAndDate(ctx, lecturerID, now)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	overviews := make([]ClassOverview, 0, len(sessions))
	for _, session := range sessions {
		if session.HasEnded(now) {
			continue
		}

		enrollments, err := s.enrollments.ListByModule(ctx, session.ModuleID)
		if err != nil {
			return nil, domain.ErrInternal.WithError(err)
		}

		studentIDs := make([]int64, len(enrollments))
		for i, e := range enrollments {
			studentIDs[i] = e.StudentID
		}

		facialCount, err := s.references.CountByStudents(ctx, studentIDs)
		if err != nil {
			return nil, domain.ErrInternal.WithError(err)
		}

		attendanceCount, err := s.attendance.CountByClass(ctx, session.ID)
		if err != nil {
			return nil, domain.ErrInternal.WithError(err)
		}

		overviews = append(overviews, ClassOverview{
			Session:         session,
			EnrolledCount:   len(enrollments),
			FacialCount:     facialCount,
			AttendanceCount: attendanceCount,
			IsActive:        session.IsActive(now),
		})
	}

	return overviews, nil
}

// Roster returns every student enrolled in the class's module, flagged with
// facial registration status and any recorded attendance.
func (s *ScannerService) Roster(ctx context.Context, classID int64) ([]RosterEntry, error) {
	session, err := s.sessions.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments.ListByModule(ctx, session.ModuleID)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	studentIDs := make([]int64, len(enrollments))
	for i, e := range enrollments {
		studentIDs[i] = e.StudentID
	}

	registered, err := s.references.ListStudentIDs(ctx, studentIDs)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	hasFacial := make(map[int64]bool, len(registered))
	for _, id := range registered {
		hasFacial[id] = true
	}

	records, err := s.attendance.ListByClass(ctx, classID)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	marked := make(map[int64]*domain.AttendanceRecord, len(records))
	for i := range records {
		marked[records[i].StudentID] = &records[i]
	}

	roster := make([]RosterEntry, len(enrollments))
	for i, e := range enrollments {
		roster[i] = RosterEntry{
			StudentID:     e.StudentID,
			StudentName:   e.StudentName,
			StudentNumber: e.StudentNumber,
			HasFacialData: hasFacial[e.StudentID],
			Attendance:    marked[e.StudentID],
		}
	}

	return roster, nil
}

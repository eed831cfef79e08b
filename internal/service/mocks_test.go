package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/rollcall/internal/domain"
	"github.com/campuskit/rollcall/internal/facial"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetByID(ctx context.Context, id int64) (*domain.ClassSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClassSession), args.Error(1)
}

func (m *MockSessionRepository) ListByLecturerAndDate(ctx context.Context, lecturerID int64, day time.Time) ([]domain.ClassSession, error) {
	args := m.Called(ctx, lecturerID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClassSession), args.Error(1)
}

type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) ListByModule(ctx context.Context, moduleID int64) ([]domain.Enrollment, error) {
	args := m.Called(ctx, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) CountByModule(ctx context.Context, moduleID int64) (int, error) {
	args := m.Called(ctx, moduleID)
	return args.Int(0), args.Error(1)
}

type MockFacialReferenceRepository struct {
	mock.Mock
}

func (m *MockFacialReferenceRepository) GetByStudent(ctx context.Context, studentID int64) (*domain.FacialReference, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FacialReference), args.Error(1)
}

func (m *MockFacialReferenceRepository) Upsert(ctx context.Context, ref *domain.FacialReference) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockFacialReferenceRepository) ListStudentIDs(ctx context.Context, studentIDs []int64) ([]int64, error) {
	args := m.Called(ctx, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockFacialReferenceRepository) CountByStudents(ctx context.Context, studentIDs []int64) (int, error) {
	args := m.Called(ctx, studentIDs)
	return args.Int(0), args.Error(1)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) Exists(ctx context.Context, studentID, classID int64) (bool, error) {
	args := m.Called(ctx, studentID, classID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttendanceRepository) Create(ctx context.Context, rec *domain.AttendanceRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAttendanceRepository) ListByClass(ctx context.Context, classID int64) ([]domain.AttendanceRecord, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AttendanceRecord), args.Error(1)
}

func (m *MockAttendanceRepository) CountByClass(ctx context.Context, classID int64) (int, error) {
	args := m.Called(ctx, classID)
	return args.Int(0), args.Error(1)
}

type MockScanAuditRepository struct {
	mock.Mock
}

func (m *MockScanAuditRepository) Create(ctx context.Context, audit *domain.ScanAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id int64) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractProbe(img image.Image) (facial.Descriptor, error) {
	args := m.Called(img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(facial.Descriptor), args.Error(1)
}

func (m *MockExtractor) ExtractReference(img image.Image) (facial.Descriptor, error) {
	args := m.Called(img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(facial.Descriptor), args.Error(1)
}

func (m *MockExtractor) ExtractReferenceFile(path string) (facial.Descriptor, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(facial.Descriptor), args.Error(1)
}

// testDataURI builds a small valid PNG capture payload.
func testDataURI(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// activeSession is scheduled for the whole of today so it can never have
// ended while a test is running.
func activeSession(id, moduleID int64) *domain.ClassSession {
	now := time.Now()
	return &domain.ClassSession{
		ID:         id,
		ModuleID:   moduleID,
		ModuleCode: "CS101",
		ClassType:  domain.ClassTypeLecture,
		ClassDate:  time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		StartTime:  0,
		EndTime:    24 * time.Hour,
	}
}

func endedSession(id, moduleID int64) *domain.ClassSession {
	yesterday := time.Now().AddDate(0, 0, -1)
	return &domain.ClassSession{
		ID:         id,
		ModuleID:   moduleID,
		ModuleCode: "CS101",
		ClassType:  domain.ClassTypeLecture,
		ClassDate:  time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location()),
		StartTime:  9 * time.Hour,
		EndTime:    10 * time.Hour,
	}
}

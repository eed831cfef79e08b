package service

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"path/filepath"
	"time"

	"github.com/campuskit/rollcall/internal/domain"
	"github.com/campuskit/rollcall/internal/facial"
)

// DefaultSimilarityThreshold gates best-match selection. A candidate must
// score strictly above it to be considered at all.
const DefaultSimilarityThreshold = 0.6

type ClassSessionRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSession, error)
}

type EnrollmentRepositoryInterface interface {
	ListByModule(ctx context.Context, moduleID int64) ([]domain.Enrollment, error)
}

type FacialReferenceRepositoryInterface interface {
	GetByStudent(ctx context.Context, studentID int64) (*domain.FacialReference, error)
}

type AttendanceRepositoryInterface interface {
	Exists(ctx context.Context, studentID, classID int64) (bool, error)
	Create(ctx context.Context, rec *domain.AttendanceRecord) error
}

type ScanAuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.ScanAudit) error
}

// FaceExtractor is the slice of the facial package the orchestrator needs.
type FaceExtractor interface {
	ExtractProbe(img image.Image) (facial.Descriptor, error)
	ExtractReferenceFile(path string) (facial.Descriptor, error)
}

// RecognitionService runs one face-recognition request end to end: session
// validation, probe extraction, gallery scan, best-match selection and the
// attendance write. Gallery descriptors are recomputed from stored images on
// every call; no descriptor state survives between requests.
type RecognitionService struct {
	sessions    ClassSessionRepositoryInterface
	enrollments EnrollmentRepositoryInterface
	references  FacialReferenceRepositoryInterface
	attendance  AttendanceRepositoryInterface
	audits      ScanAuditRepositoryInterface
	extractor   FaceExtractor
	uploadDir   string
	threshold   float64
}

func NewRecognitionService(
	sessions ClassSessionRepositoryInterface,
	enrollments EnrollmentRepositoryInterface,
	references FacialReferenceRepositoryInterface,
	attendance AttendanceRepositoryInterface,
	audits ScanAuditRepositoryInterface,
	extractor FaceExtractor,
	uploadDir string,
) *RecognitionService {
	return &RecognitionService{
		sessions:    sessions,
		enrollments: enrollments,
		references:  references,
		attendance:  attendance,
		audits:      audits,
		extractor:   extractor,
		uploadDir:   uploadDir,
		threshold:   DefaultSimilarityThreshold,
	}
}

func (s *RecognitionService) WithThreshold(threshold float64) *RecognitionService {
	s.threshold = threshold
	return s
}

// Recognize matches the captured frame against the session's enrollment
// gallery and marks attendance for the best candidate. imageData is the
// data-URI capture payload from the scanner page.
func (s *RecognitionService) Recognize(ctx context.Context, classID int64, imageData string) (*domain.Recognition, error) {
	start := time.Now()

	session, err := s.sessions.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if session.HasEnded(time.Now()) {
		s.audit(ctx, classID, nil, 0, "session_ended", start)
		return nil, domain.SessionEndedError(session.Info())
	}

	img, err := facial.DecodeDataURI(imageData)
	if err != nil {
		s.audit(ctx, classID, nil, 0, "invalid_image", start)
		return nil, err
	}

	probe, err := s.extractor.ExtractProbe(img)
	if err != nil {
		s.audit(ctx, classID, nil, 0, "no_face", start)
		return nil, err
	}

	enrollments, err := s.enrollments.ListByModule(ctx, session.ModuleID)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	// Enrollment order is the tie-break: only a strictly better score may
	// displace the current best, so the first of equal top scores wins.
	var (
		best           *domain.Enrollment
		bestSimilarity float64
	)
	for i := range enrollments {
		candidate := &enrollments[i]

		ref, err := s.references.GetByStudent(ctx, candidate.StudentID)
		if err != nil {
			if errors.Is(err, domain.ErrFacialDataNotFound) {
				continue
			}
			return nil, domain.ErrInternal.WithError(err)
		}

		// A stored image that no longer yields exactly one face disqualifies
		// this candidate only, never the request.
		stored, err := s.extractor.ExtractReferenceFile(filepath.Join(s.uploadDir, ref.ImagePath))
		if err != nil {
			continue
		}

		similarity := facial.CosineSimilarity(probe, stored)
		if similarity > bestSimilarity && similarity > s.threshold {
			bestSimilarity = similarity
			best = candidate
		}
	}

	if best == nil {
		s.audit(ctx, classID, nil, 0, "no_match", start)
		return nil, domain.ErrNoMatch
	}

	result := &domain.Recognition{
		StudentID:     best.StudentID,
		StudentName:   best.StudentName,
		StudentNumber: best.StudentNumber,
		Similarity:    math.Round(bestSimilarity*10000) / 100,
		ClassInfo:     session.Info(),
	}

	exists, err := s.attendance.Exists(ctx, best.StudentID, classID)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	if exists {
		s.alreadyMarked(result, session)
		s.audit(ctx, classID, &best.StudentID, bestSimilarity, "already_marked", start)
		return result, nil
	}

	record := &domain.AttendanceRecord{
		StudentID: best.StudentID,
		ClassID:   classID,
		Status:    domain.AttendancePresent,
		Timestamp: time.Now(),
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		if errors.Is(err, domain.ErrAttendanceExists) {
			// Lost a race with a concurrent recognition of the same student;
			// the unique constraint kept the table clean.
			s.alreadyMarked(result, session)
			s.audit(ctx, classID, &best.StudentID, bestSimilarity, "already_marked", start)
			return result, nil
		}
		return nil, domain.ErrInternal.WithError(err)
	}

	result.Message = fmt.Sprintf("Attendance marked for %s in %s", best.StudentName, session.Info())
	s.audit(ctx, classID, &best.StudentID, bestSimilarity, "marked", start)
	return result, nil
}

func (s *RecognitionService) alreadyMarked(result *domain.Recognition, session *domain.ClassSession) {
	result.AlreadyMarked = true
	result.Message = fmt.Sprintf("Attendance already marked for %s in %s", result.StudentName, session.Info())
}

// audit records the attempt best-effort; the recognition outcome was already
// determined and an audit failure must not change it.
func (s *RecognitionService) audit(ctx context.Context, classID int64, studentID *int64, similarity float64, outcome string, start time.Time) {
	if s.audits == nil {
		return
	}
	_ = s.audits.Create(ctx, &domain.ScanAudit{
		ClassID:          classID,
		MatchedStudentID: studentID,
		Similarity:       similarity,
		Outcome:          outcome,
		LatencyMs:        time.Since(start).Milliseconds(),
	})
}

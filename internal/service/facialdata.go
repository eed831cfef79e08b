package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/campuskit/rollcall/internal/domain"
	"github.com/campuskit/rollcall/internal/facial"
)

type StudentRepositoryInterface interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
}

type FacialReferenceUpsertInterface interface {
	GetByStudent(ctx context.Context, studentID int64) (*domain.FacialReference, error)
	Upsert(ctx context.Context, ref *domain.FacialReference) error
}

// ReferenceExtractor validates that an enrollment photo contains exactly one
// face before it is accepted as reference material.
type ReferenceExtractor interface {
	ExtractReference(img image.Image) (facial.Descriptor, error)
}

// FacialDataService manages each student's stored reference image. One image
// per student; uploads replace the previous file on disk and the database row.
type FacialDataService struct {
	students   StudentRepositoryInterface
	references FacialReferenceUpsertInterface
	extractor  ReferenceExtractor
	uploadDir  string
}

func NewFacialDataService(
	students StudentRepositoryInterface,
	references FacialReferenceUpsertInterface,
	extractor ReferenceExtractor,
	uploadDir string,
) *FacialDataService {
	return &FacialDataService{
		students:   students,
		references: references,
		extractor:  extractor,
		uploadDir:  uploadDir,
	}
}

// Upload stores imageData as the student's reference image. The photo must
// contain exactly one detectable face. The file is written before the
// database row so a stored row always points at an existing file.
func (s *FacialDataService) Upload(ctx context.Context, studentID int64, imageData string) (*domain.FacialReference, error) {
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	img, err := facial.DecodeDataURI(imageData)
	if err != nil {
		return nil, err
	}

	if _, err := s.extractor.ExtractReference(img); err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("student_%s.jpg", student.StudentNumber)

	previous, err := s.references.GetByStudent(ctx, studentID)
	if err != nil && !errors.Is(err, domain.ErrFacialDataNotFound) {
		return nil, domain.ErrInternal.WithError(err)
	}

	if err := s.writeImage(fileName, img); err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	ref := &domain.FacialReference{
		StudentID: studentID,
		ImagePath: fileName,
	}
	if err := s.references.Upsert(ctx, ref); err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	// Drop the superseded file when a rename left it behind.
	if previous != nil && previous.ImagePath != fileName {
		_ = os.Remove(filepath.Join(s.uploadDir, previous.ImagePath))
	}

	return ref, nil
}

func (s *FacialDataService) Get(ctx context.Context, studentID int64) (*domain.FacialReference, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.references.GetByStudent(ctx, studentID)
}

// ReferenceImage returns the student's stored reference photo as a JPEG data
// URI. A database row whose file has gone missing reads as no facial data.
func (s *FacialDataService) ReferenceImage(ctx context.Context, studentID int64) (string, error) {
	ref, err := s.Get(ctx, studentID)
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(filepath.Join(s.uploadDir, ref.ImagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return "", domain.ErrFacialDataNotFound
		}
		return "", domain.ErrInternal.WithError(err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw), nil
}

func (s *FacialDataService) writeImage(fileName string, img image.Image) error {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.uploadDir, fileName))
	if err != nil {
		return fmt.Errorf("create reference image: %w", err)
	}

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		f.Close()
		return fmt.Errorf("encode reference image: %w", err)
	}

	// A failed close can mean a truncated flush; the row must not be
	// committed over a partial file.
	if err := f.Close(); err != nil {
		return fmt.Errorf("close reference image: %w", err)
	}
	return nil
}

package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/rollcall/internal/domain"
)

// FacialDataService interface for the service
type FacialDataService interface {
	Upload(ctx context.Context, studentID int64, imageData string) (*domain.FacialReference, error)
	Get(ctx context.Context, studentID int64) (*domain.FacialReference, error)
	ReferenceImage(ctx context.Context, studentID int64) (string, error)
}

// FacialDataHandler handles student reference image requests
type FacialDataHandler struct {
	service FacialDataService
	logger  *slog.Logger
}

// NewFacialDataHandler creates a new FacialDataHandler instance
func NewFacialDataHandler(service FacialDataService, logger *slog.Logger) *FacialDataHandler {
	return &FacialDataHandler{
		service: service,
		logger:  logger,
	}
}

// UploadFaceRequest is the enrollment photo payload
type UploadFaceRequest struct {
	Image string `json:"image"`
}

// FacialDataResponse response for facial data endpoints
type FacialDataResponse struct {
	StudentID  int64  `json:"student_id"`
	ImagePath  string `json:"image_path"`
	UploadedAt string `json:"uploaded_at"`
	Image      string `json:"image,omitempty"`
}

// Upload POST /v1/students/:student_id/face - store or replace the reference image
func (h *FacialDataHandler) Upload(c *fiber.Ctx) error {
	studentID, err := parseID(c, "student_id")
	if err != nil {
		return err
	}

	var req UploadFaceRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if req.Image == "" {
		return domain.ErrBadRequest.WithError(errors.New("image is required"))
	}

	ref, err := h.service.Upload(c.Context(), studentID, req.Image)
	if err != nil {
		return err
	}

	h.logger.Info("facial reference stored",
		slog.Int64("student_id", studentID),
		slog.String("image_path", ref.ImagePath),
	)

	return c.Status(fiber.StatusCreated).JSON(facialDataResponse(ref))
}

// Get GET /v1/students/:student_id/face - fetch the stored reference with its image
func (h *FacialDataHandler) Get(c *fiber.Ctx) error {
	studentID, err := parseID(c, "student_id")
	if err != nil {
		return err
	}

	ref, err := h.service.Get(c.Context(), studentID)
	if err != nil {
		return err
	}

	resp := facialDataResponse(ref)
	resp.Image, err = h.service.ReferenceImage(c.Context(), studentID)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func facialDataResponse(ref *domain.FacialReference) FacialDataResponse {
	return FacialDataResponse{
		StudentID:  ref.StudentID,
		ImagePath:  ref.ImagePath,
		UploadedAt: ref.UploadedAt.Format(time.RFC3339),
	}
}

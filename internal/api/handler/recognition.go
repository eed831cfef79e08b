package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/rollcall/internal/domain"
)

// RecognitionService interface for the service
type RecognitionService interface {
	Recognize(ctx context.Context, classID int64, imageData string) (*domain.Recognition, error)
}

// RecognitionHandler handles attendance recognition requests
type RecognitionHandler struct {
	service RecognitionService
	logger  *slog.Logger
}

// NewRecognitionHandler creates a new RecognitionHandler instance
func NewRecognitionHandler(service RecognitionService, logger *slog.Logger) *RecognitionHandler {
	return &RecognitionHandler{
		service: service,
		logger:  logger,
	}
}

// RecognizeRequest is the scanner capture payload
type RecognizeRequest struct {
	Image string `json:"image"`
}

// RecognizeResponse response for the recognition endpoint
type RecognizeResponse struct {
	StudentID     int64   `json:"student_id"`
	StudentName   string  `json:"student_name"`
	StudentNumber string  `json:"student_number"`
	Similarity    float64 `json:"similarity"`
	AlreadyMarked bool    `json:"already_marked"`
	ClassInfo     string  `json:"class_info"`
	Message       string  `json:"message"`
}

// Recognize POST /v1/classes/:class_id/recognitions - match a capture and mark attendance
func (h *RecognitionHandler) Recognize(c *fiber.Ctx) error {
	classID, err := parseID(c, "class_id")
	if err != nil {
		return err
	}

	var req RecognizeRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if req.Image == "" {
		return domain.ErrBadRequest.WithError(errors.New("image is required"))
	}

	result, err := h.service.Recognize(c.Context(), classID, req.Image)
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if result.AlreadyMarked {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(RecognizeResponse{
		StudentID:     result.StudentID,
		StudentName:   result.StudentName,
		StudentNumber: result.StudentNumber,
		Similarity:    result.Similarity,
		AlreadyMarked: result.AlreadyMarked,
		ClassInfo:     result.ClassInfo,
		Message:       result.Message,
	})
}

// parseID extracts a positive integer route parameter
func parseID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrBadRequest.WithMessage("invalid " + name)
	}
	return id, nil
}

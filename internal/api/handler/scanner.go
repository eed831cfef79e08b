package handler

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/campuskit/rollcall/internal/api/middleware"
	"github.com/campuskit/rollcall/internal/service"
)

// ScannerService interface for the service
type ScannerService interface {
	ListClasses(ctx context.Context, lecturerID int64) ([]service.ClassOverview, error)
	Roster(ctx context.Context, classID int64) ([]service.RosterEntry, error)
}

// ScannerHandler handles the lecturer-facing scanner views
type ScannerHandler struct {
	service ScannerService
	logger  *slog.Logger
}

// NewScannerHandler creates a new ScannerHandler instance
func NewScannerHandler(service ScannerService, logger *slog.Logger) *ScannerHandler {
	return &ScannerHandler{
		service: service,
		logger:  logger,
	}
}

// ListClasses GET /v1/scanner/classes - today's scannable classes for the caller
func (h *ScannerHandler) ListClasses(c *fiber.Ctx) error {
	lecturerID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	overviews, err := h.service.ListClasses(c.Context(), lecturerID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"classes": overviews})
}

// Roster GET /v1/classes/:class_id/roster - expected students with status flags
func (h *ScannerHandler) Roster(c *fiber.Ctx) error {
	classID, err := parseID(c, "class_id")
	if err != nil {
		return err
	}

	roster, err := h.service.Roster(c.Context(), classID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"roster": roster})
}

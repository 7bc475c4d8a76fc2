package diff

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"symdiff/core/logger"
	"symdiff/core/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for diffs.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the diff routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/diff")
	group.Post("/", h.HandleDiff)
	group.Get("/health", h.HandleHealth)
}

// HandleDiff computes the symmetric difference of two record collections.
// @Summary Compute Symmetric Difference
// @Description Returns the records whose key appears in exactly one of the two collections.
// @Tags diff
// @Accept json
// @Produce json
// @Param request body Request true "Key properties and both collections"
// @Success 200 {object} Report "Diff Report"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Failure 413 {object} map[string]string "Too Many Records"
// @Failure 502 {object} map[string]string "Source Unavailable"
// @Failure 503 {object} map[string]string "Source Not Configured"
// @Router /diff [post]
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid request body: %v", err),
		})
	}

	report, err := h.service.Diff(c.UserContext(), req)
	if err != nil {
		status := statusFor(err)
		if status >= fiber.StatusInternalServerError {
			l.Error("Diff failed", zap.Error(err))
		} else {
			l.Warn("Diff rejected", zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleHealth reports that the diff feature is serving.
// @Summary Diff Health
// @Tags diff
// @Produce json
// @Success 200 {object} map[string]string "OK"
// @Router /diff/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case isInvalid(err):
		return fiber.StatusBadRequest
	case errors.Is(err, source.ErrTooManyRecords):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, source.ErrNotConfigured):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, ErrLoad):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

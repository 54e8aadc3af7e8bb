package http

import (
	"encoding/json"

	"love-journey/internal/destinations/domain/repository"
	"love-journey/internal/destinations/usecase"
	apperrors "love-journey/internal/shared/errors"
	"love-journey/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// DestinationHandler maps the REST surface onto the destination usecase.
// Every response is the JSON envelope {success, data?|count?|message?|error?}.
type DestinationHandler struct {
	UC    usecase.DestinationUsecase
	Ready repository.ReadinessReporter
	Log   logger.Logger
}

// NewDestinationHandler creates the HTTP handler for the destinations API.
func NewDestinationHandler(uc usecase.DestinationUsecase, ready repository.ReadinessReporter, log logger.Logger) *DestinationHandler {
	return &DestinationHandler{
		UC:    uc,
		Ready: ready,
		Log:   log.WithComponent("destination-handler"),
	}
}

// RegisterRoutes wires the API routes onto the router.
func (h *DestinationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)

	api := router.Group("/api")
	api.Get("/destinations", h.List)
	api.Post("/destinations", h.Create)
	api.Post("/destinations/clear", h.Clear)
	api.Post("/destinations/import", h.Import)
	api.Put("/destinations/:id", h.Update)
	api.Delete("/destinations/:id", h.Delete)
}

type clearRequest struct {
	Secret string `json:"secret"`
}

type importRequest struct {
	Secret       string          `json:"secret"`
	Destinations json.RawMessage `json:"destinations"`
}

func (h *DestinationHandler) respondError(c *fiber.Ctx, err error) error {
	status := apperrors.HTTPStatus(err)
	if status == fiber.StatusInternalServerError {
		h.Log.WithContext(c.UserContext()).Errorf("Request failed: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

// Health projects the storage connector readiness for orchestrators and
// load balancers.
func (h *DestinationHandler) Health(c *fiber.Ctx) error {
	if !h.Ready.IsReady() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":  false,
			"status":   "unhealthy",
			"database": "disconnected",
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"status":   "healthy",
		"database": "connected",
	})
}

func (h *DestinationHandler) List(c *fiber.Ctx) error {
	dests, err := h.UC.List(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dests,
		"count":   len(dests),
	})
}

func (h *DestinationHandler) Create(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return h.respondError(c, apperrors.NewValidationError("invalid request body"))
	}

	dest, err := h.UC.Create(c.UserContext(), fields)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dest,
	})
}

func (h *DestinationHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return h.respondError(c, apperrors.NewValidationError("invalid request body"))
	}

	if err := h.UC.Update(c.UserContext(), id, fields); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "destination updated",
	})
}

func (h *DestinationHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.UC.Delete(c.UserContext(), id); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "destination deleted",
	})
}

func (h *DestinationHandler) Clear(c *fiber.Ctx) error {
	var req clearRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respondError(c, apperrors.NewValidationError("invalid request body"))
	}

	count, err := h.UC.Clear(c.UserContext(), req.Secret)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
		"message": "all destinations deleted",
	})
}

func (h *DestinationHandler) Import(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return h.respondError(c, apperrors.NewValidationError("invalid request body"))
	}

	var records []map[string]interface{}
	if len(req.Destinations) == 0 || string(req.Destinations) == "null" {
		return h.respondError(c, apperrors.NewValidationError("destinations must be an array"))
	}
	if err := json.Unmarshal(req.Destinations, &records); err != nil {
		return h.respondError(c, apperrors.NewValidationError("destinations must be an array"))
	}

	count, err := h.UC.BulkImport(c.UserContext(), req.Secret, records)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   count,
		"message": "destinations imported",
	})
}

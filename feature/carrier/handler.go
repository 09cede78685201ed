package carrier

import (
	"shipment-gateway/core/logger"
	"shipment-gateway/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for carriers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the carrier routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/carriers")
	group.Get("/", auth.RequireScope(auth.ScopeRead), h.HandleListCarriers)
	group.Get("/services", auth.RequireScope(auth.ScopeRead), h.HandleListServices)
	group.Post("/refresh", auth.RequireScope(auth.ScopeWrite), h.HandleRefresh)
}

// HandleListCarriers returns the connected carriers.
// @Summary List Carriers
// @Tags carriers
// @Produce json
// @Success 200 {array} shipengine.Carrier
// @Failure 503 {object} map[string]string "ShipEngine Unavailable"
// @Router /api/carriers [get]
func (h *Handler) HandleListCarriers(c *fiber.Ctx) error {
	cat, err := h.service.Catalog(c.UserContext())
	if err != nil {
		return h.unavailable(c, err)
	}
	return c.JSON(cat.Carriers())
}

// HandleListServices returns the services of every connected carrier.
// @Summary List Services
// @Tags carriers
// @Produce json
// @Success 200 {array} shipengine.Service
// @Failure 503 {object} map[string]string "ShipEngine Unavailable"
// @Router /api/carriers/services [get]
func (h *Handler) HandleListServices(c *fiber.Ctx) error {
	cat, err := h.service.Catalog(c.UserContext())
	if err != nil {
		return h.unavailable(c, err)
	}
	return c.JSON(cat.Services())
}

// HandleRefresh reloads the carrier catalog.
// @Summary Refresh Carriers
// @Tags carriers
// @Produce json
// @Success 200 {object} map[string]int
// @Failure 503 {object} map[string]string "ShipEngine Unavailable"
// @Router /api/carriers/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	cat, err := h.service.Refresh(c.UserContext())
	if err != nil {
		return h.unavailable(c, err)
	}
	return c.JSON(fiber.Map{"carriers": len(cat.Carriers())})
}

func (h *Handler) unavailable(c *fiber.Ctx, err error) error {
	logger.WithRayID(h.logger, c).Error("Carrier catalog unavailable", zap.Error(err))
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": err.Error(),
	})
}

package health

import (
	"github.com/gofiber/fiber/v2"
)

// Handler handles health probes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/alive", h.HandleAlive)
	group.Get("/ready", h.HandleReady)
}

// HandleAlive reports that the process serves requests.
// @Summary Liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health/alive [get]
func (h *Handler) HandleAlive(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": StatusOK})
}

// HandleReady runs the readiness checks.
// @Summary Readiness
// @Description Checks the mirror database and schema, snapshot storage, the ShipEngine circuit breaker and the last sync. Responds 503 when the mirror is unusable.
// @Tags health
// @Produce json
// @Success 200 {object} health.Report
// @Failure 503 {object} health.Report
// @Router /health/ready [get]
func (h *Handler) HandleReady(c *fiber.Ctx) error {
	report := h.service.Ready(c.UserContext())
	if report.Status == StatusDown {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

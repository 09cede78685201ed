package shipment

import (
	"errors"

	"shipment-gateway/core/apperr"
	"shipment-gateway/core/logger"
	"shipment-gateway/core/middleware/auth"
	"shipment-gateway/core/reconcile"
	"shipment-gateway/feature/shipment/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for shipments.
type Handler struct {
	gateway *Gateway
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(gateway *Gateway, logger *zap.Logger) *Handler {
	return &Handler{gateway: gateway, logger: logger}
}

// RegisterRoutes registers the shipment routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/shipment")
	read := auth.RequireScope(auth.ScopeRead)
	write := auth.RequireScope(auth.ScopeWrite)

	group.Get("/", read, h.HandleListShipments)
	group.Post("/", write, h.HandleCreateShipment)
	group.Post("/sync", write, h.HandleSync)
	group.Get("/:id", read, h.HandleGetShipment)
	group.Put("/:id", write, h.HandleUpdateShipment)
	group.Put("/:id/cancel", write, h.HandleCancelShipment)
}

// HandleListShipments returns a page of shipments.
// @Summary List Shipments
// @Description Returns a page of mirrored shipments, newest first. Cancelled shipments are hidden unless requested.
// @Tags shipment
// @Produce json
// @Param page_number query int false "Page number (1-based)"
// @Param page_size query int false "Page size"
// @Param cancelled query bool false "Include cancelled shipments"
// @Success 200 {object} models.ShipmentPage
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/shipment [get]
func (h *Handler) HandleListShipments(c *fiber.Ctx) error {
	var req models.ListRequest
	if err := c.QueryParser(&req); err != nil {
		return h.fail(c, apperr.Validation("invalid query: "+err.Error(), nil))
	}

	page, err := h.gateway.GetShipments(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(page)
}

// HandleGetShipment returns one shipment.
// @Summary Get Shipment
// @Description Returns a shipment from the mirror, falling back to ShipEngine.
// @Tags shipment
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} models.Shipment
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 503 {object} map[string]string "ShipEngine Unavailable"
// @Router /api/shipment/{id} [get]
func (h *Handler) HandleGetShipment(c *fiber.Ctx) error {
	s, err := h.gateway.GetShipment(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

// HandleCreateShipment creates a shipment.
// @Summary Create Shipment
// @Description Creates a shipment in ShipEngine and mirrors it.
// @Tags shipment
// @Accept json
// @Produce json
// @Param request body models.CreateShipmentRequest true "Shipment"
// @Success 201 {object} models.Shipment
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 502 {object} map[string]string "Rejected by ShipEngine"
// @Router /api/shipment [post]
func (h *Handler) HandleCreateShipment(c *fiber.Ctx) error {
	var req models.CreateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, apperr.Validation("invalid request body: "+err.Error(), nil))
	}

	s, err := h.gateway.CreateShipment(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// HandleUpdateShipment updates a shipment.
// @Summary Update Shipment
// @Tags shipment
// @Accept json
// @Produce json
// @Param id path string true "Shipment ID"
// @Param request body models.CreateShipmentRequest true "Shipment"
// @Success 200 {object} models.Shipment
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Rejected by ShipEngine"
// @Router /api/shipment/{id} [put]
func (h *Handler) HandleUpdateShipment(c *fiber.Ctx) error {
	var req models.UpdateShipmentRequest
	if err := c.BodyParser(&req); err != nil {
		return h.fail(c, apperr.Validation("invalid request body: "+err.Error(), nil))
	}

	s, err := h.gateway.UpdateShipment(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

// HandleCancelShipment cancels a shipment.
// @Summary Cancel Shipment
// @Tags shipment
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Rejected by ShipEngine"
// @Router /api/shipment/{id}/cancel [put]
func (h *Handler) HandleCancelShipment(c *fiber.Ctx) error {
	if err := h.gateway.CancelShipment(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": true})
}

// HandleSync runs a reconciliation pass.
// @Summary Sync Shipments
// @Description Runs a reconciliation pass against ShipEngine, joining one already running.
// @Tags shipment
// @Produce json
// @Param dry_run query bool false "Compute the plan without applying it"
// @Success 200 {object} reconcile.Report
// @Failure 503 {object} map[string]string "ShipEngine Unavailable"
// @Router /api/shipment/sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	report, err := h.gateway.Sync(c.UserContext(), reconcile.Options{
		DryRun: c.QueryBool("dry_run"),
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	l := logger.WithRayID(h.logger, c)
	status := apperr.HTTPStatus(err)

	body := fiber.Map{"error": err.Error(), "kind": apperr.KindOf(err)}
	var appErr *apperr.Error
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		body["fields"] = appErr.Fields
	}

	if status >= fiber.StatusInternalServerError {
		l.Error("Shipment request failed", zap.Error(err))
	} else {
		l.Debug("Shipment request rejected", zap.Error(err))
	}
	return c.Status(status).JSON(body)
}

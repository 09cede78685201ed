package shipment

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	gateway *Gateway
	handler *Handler
}

// NewFeature creates the shipment feature around gateway.
func NewFeature(gateway *Gateway, logger *zap.Logger) *Feature {
	return &Feature{gateway: gateway, handler: NewHandler(gateway, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "shipment"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Gateway returns the feature's gateway.
func (f *Feature) Gateway() *Gateway {
	return f.gateway
}

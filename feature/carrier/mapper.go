package carrier

import (
	"context"

	"shipment-gateway/feature/shipment/models"

	"go.uber.org/zap"
)

// Mapper fills carrier and service display names on shipments.
type Mapper struct {
	service *Service
	logger  *zap.Logger
}

// NewMapper creates a mapper reading from service.
func NewMapper(service *Service, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{service: service, logger: logger}
}

// Enrich sets CarrierName and ServiceCodeName in place. Unmapped values, or
// every value when the catalog cannot be loaded, become n/a.
func (m *Mapper) Enrich(ctx context.Context, shipments []models.Shipment) {
	cat, err := m.service.Catalog(ctx)
	if err != nil {
		m.logger.Warn("Carrier catalog unavailable, names left as n/a", zap.Error(err))
	}
	for i := range shipments {
		s := &shipments[i]
		if cat == nil {
			s.CarrierName = models.NotAvailable
			s.ServiceCodeName = models.NotAvailable
			continue
		}
		s.CarrierName = cat.CarrierName(s.CarrierID)
		s.ServiceCodeName = cat.ServiceName(s.CarrierID, s.ServiceCode)
	}
}

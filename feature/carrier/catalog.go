package carrier

import (
	"time"

	"shipment-gateway/core/shipengine"
	"shipment-gateway/feature/shipment/models"
)

// Catalog is an immutable snapshot of the connected carriers, built once per
// cache fill.
type Catalog struct {
	carriers []shipengine.Carrier
	byID     map[string]shipengine.Carrier
	// services maps carrier id, then service code, to the service name.
	services map[string]map[string]string
	// anyService maps a service code to the first name seen for it.
	anyService map[string]string

	// Built is when the snapshot was taken.
	Built time.Time
	// TTL is how long the snapshot is reused.
	TTL time.Duration
}

// NewCatalog indexes carriers.
func NewCatalog(carriers []shipengine.Carrier, built time.Time, ttl time.Duration) *Catalog {
	c := &Catalog{
		carriers:   carriers,
		byID:       make(map[string]shipengine.Carrier, len(carriers)),
		services:   make(map[string]map[string]string, len(carriers)),
		anyService: make(map[string]string),
		Built:      built,
		TTL:        ttl,
	}
	for _, cr := range carriers {
		c.byID[cr.CarrierID] = cr
		names := make(map[string]string, len(cr.Services))
		for _, svc := range cr.Services {
			names[svc.ServiceCode] = svc.Name
			if _, ok := c.anyService[svc.ServiceCode]; !ok {
				c.anyService[svc.ServiceCode] = svc.Name
			}
		}
		c.services[cr.CarrierID] = names
	}
	return c
}

// IsExpired reports whether the snapshot is older than its TTL at now.
func (c *Catalog) IsExpired(now time.Time) bool {
	if c.TTL <= 0 {
		return true
	}
	return now.Sub(c.Built) > c.TTL
}

// Carriers returns the carriers in API order.
func (c *Catalog) Carriers() []shipengine.Carrier {
	return c.carriers
}

// Services returns every service of every carrier.
func (c *Catalog) Services() []shipengine.Service {
	var out []shipengine.Service
	for _, cr := range c.carriers {
		for _, svc := range cr.Services {
			if svc.CarrierID == "" {
				svc.CarrierID = cr.CarrierID
			}
			out = append(out, svc)
		}
	}
	return out
}

// Has reports whether id is a connected carrier.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// CarrierIDs returns the set of connected carrier ids.
func (c *Catalog) CarrierIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(c.byID))
	for id := range c.byID {
		ids[id] = struct{}{}
	}
	return ids
}

// CarrierName returns the display name of id, or n/a.
func (c *Catalog) CarrierName(id *string) string {
	if id == nil {
		return models.NotAvailable
	}
	cr, ok := c.byID[*id]
	if !ok || cr.DisplayName() == "" {
		return models.NotAvailable
	}
	return cr.DisplayName()
}

// ServiceName returns the name of code, preferring the carrier's own
// services, or n/a.
func (c *Catalog) ServiceName(carrierID, code *string) string {
	if code == nil {
		return models.NotAvailable
	}
	if carrierID != nil {
		if name, ok := c.services[*carrierID][*code]; ok && name != "" {
			return name
		}
	}
	if name, ok := c.anyService[*code]; ok && name != "" {
		return name
	}
	return models.NotAvailable
}

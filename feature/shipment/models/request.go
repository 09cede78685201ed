package models

import "time"

const (
	DefaultPageSize = 25
	MaxPageSize     = 500
)

// ListRequest selects a page of the mirror.
type ListRequest struct {
	PageNumber       int  `query:"page_number"`
	PageSize         int  `query:"page_size"`
	IncludeCancelled bool `query:"cancelled"`
}

// Defaults fills zero values and clamps the page size.
func (r ListRequest) Defaults() ListRequest {
	if r.PageNumber < 1 {
		r.PageNumber = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset is the number of records to skip.
func (r ListRequest) Offset() int {
	return (r.PageNumber - 1) * r.PageSize
}

// ShipmentPage is one page of mirrored shipments.
type ShipmentPage struct {
	Shipments  []Shipment `json:"shipments"`
	PageNumber int        `json:"page_number"`
	PageSize   int        `json:"page_size"`
	TotalCount int        `json:"total_count"`
	TotalPages int        `json:"total_pages"`
}

// CreateShipmentRequest is the body accepted to create a shipment.
type CreateShipmentRequest struct {
	CarrierID   string         `json:"carrier_id" validate:"required"`
	ServiceCode string         `json:"service_code" validate:"required"`
	ShipDate    time.Time      `json:"ship_date"`
	ShipTo      AddressInput   `json:"ship_to" validate:"required"`
	ShipFrom    AddressInput   `json:"ship_from" validate:"required"`
	ReturnTo    *AddressInput  `json:"return_to,omitempty"`
	Packages    []PackageInput `json:"packages" validate:"required,min=1,dive"`
}

// UpdateShipmentRequest replaces the editable parts of a shipment.
type UpdateShipmentRequest = CreateShipmentRequest

// AddressInput is an address as accepted from clients. Older clients send
// address_one and zip_code instead of address_line1 and postal_code.
type AddressInput struct {
	Name         string `json:"name" validate:"required"`
	Company      string `json:"company_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressOne   string `json:"address_one"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city_locality" validate:"required"`
	State        string `json:"state_province"`
	PostalCode   string `json:"postal_code"`
	ZipCode      string `json:"zip_code"`
	CountryCode  string `json:"country_code" validate:"required,len=2"`
}

// Line1 resolves the first address line alias.
func (a AddressInput) Line1() string {
	if a.AddressLine1 != "" {
		return a.AddressLine1
	}
	return a.AddressOne
}

// Postal resolves the postal code alias.
func (a AddressInput) Postal() string {
	if a.PostalCode != "" {
		return a.PostalCode
	}
	return a.ZipCode
}

// PackageInput is a parcel as accepted from clients.
type PackageInput struct {
	Weight        float64 `json:"weight" validate:"gt=0"`
	WeightUnit    string  `json:"weight_unit" validate:"omitempty,oneof=pound ounce gram kilogram"`
	Length        float64 `json:"length" validate:"gte=0"`
	Width         float64 `json:"width" validate:"gte=0"`
	Height        float64 `json:"height" validate:"gte=0"`
	DimensionUnit string  `json:"dimension_unit" validate:"omitempty,oneof=inch centimeter"`
}

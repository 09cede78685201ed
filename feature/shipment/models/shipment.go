package models

import (
	"strings"
	"time"
)

// Status is the normalized shipment status.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusLabelPurchased Status = "LabelPurchased"
	StatusCanceled       Status = "Canceled"
	StatusUnknown        Status = "Unknown"
)

// NotAvailable is shown for carrier and service names that cannot be mapped.
const NotAvailable = "n/a"

// Shipment is the mirrored shipment record.
type Shipment struct {
	ShipmentID  string    `json:"shipment_id" gorm:"column:shipment_id;primaryKey;size:64" bson:"shipment_id"`
	CarrierID   *string   `json:"carrier_id" gorm:"column:carrier_id;size:64;index" bson:"carrier_id"`
	ServiceCode *string   `json:"service_code" gorm:"column:service_code;size:128" bson:"service_code"`
	Status      Status    `json:"shipment_status" gorm:"column:shipment_status;size:32;index" bson:"shipment_status"`
	CreatedDate time.Time `json:"created_date" gorm:"column:created_date;index" bson:"created_date"`
	ShipDate    time.Time `json:"ship_date" gorm:"column:ship_date" bson:"ship_date"`
	SyncDate    time.Time `json:"sync_date" gorm:"column:sync_date;index" bson:"sync_date"`
	ShipTo      Address   `json:"ship_to" gorm:"column:ship_to;serializer:json" bson:"ship_to"`
	ShipFrom    Address   `json:"ship_from" gorm:"column:ship_from;serializer:json" bson:"ship_from"`
	ReturnTo    Address   `json:"return_to" gorm:"column:return_to;serializer:json" bson:"return_to"`
	Packages    []Package `json:"packages" gorm:"column:packages;serializer:json" bson:"packages"`
	TotalWeight float64   `json:"total_weight" gorm:"column:total_weight" bson:"total_weight"`

	// Display fields, filled on the way out and never stored.
	CarrierName     string `json:"carrier_name,omitempty" gorm:"-" bson:"-"`
	ServiceCodeName string `json:"service_code_name,omitempty" gorm:"-" bson:"-"`
}

// TableName implements gorm's tabler.
func (Shipment) TableName() string {
	return "shipments"
}

// Address is a postal address.
type Address struct {
	Name          string `json:"name" bson:"name"`
	Company       string `json:"company,omitempty" bson:"company,omitempty"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	AddressLine1  string `json:"address_line1" bson:"address_line1"`
	AddressLine2  string `json:"address_line2,omitempty" bson:"address_line2,omitempty"`
	AddressLine3  string `json:"address_line3,omitempty" bson:"address_line3,omitempty"`
	City          string `json:"city" bson:"city"`
	State         string `json:"state" bson:"state"`
	PostalCode    string `json:"postal_code" bson:"postal_code"`
	CountryCode   string `json:"country_code" bson:"country_code"`
	IsResidential string `json:"residential,omitempty" bson:"residential,omitempty"`
}

// Package is a normalized parcel.
type Package struct {
	Weight          float64 `json:"weight" bson:"weight"`
	WeightUnit      string  `json:"weight_unit,omitempty" bson:"weight_unit,omitempty"`
	Length          float64 `json:"length" bson:"length"`
	Width           float64 `json:"width" bson:"width"`
	Height          float64 `json:"height" bson:"height"`
	DimensionUnit   string  `json:"dimension_unit,omitempty" bson:"dimension_unit,omitempty"`
	InsuredValue    float64 `json:"insured_value" bson:"insured_value"`
	InsuredCurrency string  `json:"insured_currency,omitempty" bson:"insured_currency,omitempty"`
}

// IsCanceled reports whether the shipment was cancelled.
func (s Shipment) IsCanceled() bool {
	return s.Status == StatusCanceled
}

// Normalize returns s in the comparable form used for fingerprints and
// storage: UTC second-precision timestamps, trimmed strings and a non-nil
// package list. Display fields are cleared.
func Normalize(s Shipment) Shipment {
	s.ShipmentID = strings.TrimSpace(s.ShipmentID)
	s.CarrierID = trimPtr(s.CarrierID)
	s.ServiceCode = trimPtr(s.ServiceCode)
	s.CreatedDate = normalizeTime(s.CreatedDate)
	s.ShipDate = normalizeTime(s.ShipDate)
	s.SyncDate = normalizeTime(s.SyncDate)
	s.ShipTo = normalizeAddress(s.ShipTo)
	s.ShipFrom = normalizeAddress(s.ShipFrom)
	s.ReturnTo = normalizeAddress(s.ReturnTo)
	if s.Packages == nil {
		s.Packages = []Package{}
	} else {
		pkgs := make([]Package, len(s.Packages))
		copy(pkgs, s.Packages)
		s.Packages = pkgs
	}
	if s.Status == "" {
		s.Status = StatusUnknown
	}
	s.CarrierName = ""
	s.ServiceCodeName = ""
	return s
}

func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC().Truncate(time.Second)
}

func normalizeAddress(a Address) Address {
	a.Name = strings.TrimSpace(a.Name)
	a.Company = strings.TrimSpace(a.Company)
	a.Phone = strings.TrimSpace(a.Phone)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.AddressLine3 = strings.TrimSpace(a.AddressLine3)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.CountryCode = strings.ToUpper(strings.TrimSpace(a.CountryCode))
	return a
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

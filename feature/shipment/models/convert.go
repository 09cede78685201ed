package models

import (
	"strings"

	"shipment-gateway/core/shipengine"
	"shipment-gateway/core/utils"
)

// StatusFromRemote maps an API status to a Status.
func StatusFromRemote(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case shipengine.StatusPending:
		return StatusPending
	case shipengine.StatusLabelPurchased:
		return StatusLabelPurchased
	case shipengine.StatusCancelled:
		return StatusCanceled
	default:
		return StatusUnknown
	}
}

// FromRemote converts a wire shipment into a normalized record.
func FromRemote(w shipengine.Shipment) Shipment {
	s := Shipment{
		ShipmentID:  w.ShipmentID,
		CarrierID:   w.CarrierID,
		ServiceCode: w.ServiceCode,
		Status:      StatusFromRemote(w.ShipmentStatus),
		ShipTo:      addressFromRemote(w.ShipTo),
		ShipFrom:    addressFromRemote(w.ShipFrom),
		Packages:    make([]Package, 0, len(w.Packages)),
	}
	if w.CreatedAt != nil {
		s.CreatedDate = w.CreatedAt.Time
	}
	if w.ShipDate != nil {
		s.ShipDate = w.ShipDate.Time
	}
	if w.ReturnTo != nil {
		s.ReturnTo = addressFromRemote(*w.ReturnTo)
	}

	var sum float64
	for _, p := range w.Packages {
		pkg := packageFromRemote(p)
		sum += pkg.Weight
		s.Packages = append(s.Packages, pkg)
	}
	if w.TotalWeight != nil && w.TotalWeight.Set {
		s.TotalWeight = w.TotalWeight.Value
	} else {
		s.TotalWeight = sum
	}

	return Normalize(s)
}

func packageFromRemote(p shipengine.Package) Package {
	pkg := Package{
		Weight:     p.Weight.Value,
		WeightUnit: p.Weight.Unit,
	}

	switch {
	case p.Dimensions != nil:
		pkg.Length = p.Dimensions.Length.Value
		pkg.Width = p.Dimensions.Width.Value
		pkg.Height = p.Dimensions.Height.Value
		pkg.DimensionUnit = p.Dimensions.Unit
	default:
		pkg.Length = quantityValue(p.Length)
		pkg.Width = quantityValue(p.Width)
		pkg.Height = quantityValue(p.Height)
	}

	if p.InsuredValue != nil {
		pkg.InsuredValue = p.InsuredValue.Amount
		pkg.InsuredCurrency = p.InsuredValue.Currency
	}
	return pkg
}

func quantityValue(q *shipengine.Quantity) float64 {
	if q == nil {
		return 0
	}
	return q.Value
}

func addressFromRemote(a shipengine.Address) Address {
	return Address{
		Name:          a.Name,
		Company:       utils.StringValue(a.CompanyName),
		Phone:         a.Phone,
		AddressLine1:  a.AddressLine1,
		AddressLine2:  utils.StringValue(a.AddressLine2),
		AddressLine3:  utils.StringValue(a.AddressLine3),
		City:          a.CityLocality,
		State:         a.StateProvince,
		PostalCode:    a.PostalCode,
		CountryCode:   a.CountryCode,
		IsResidential: a.AddressResidentialIndicator,
	}
}

// ToRemote converts the request into the wire form sent to the API.
func (r CreateShipmentRequest) ToRemote() shipengine.Shipment {
	w := shipengine.Shipment{
		CarrierID:   utils.StringPtr(r.CarrierID),
		ServiceCode: utils.StringPtr(r.ServiceCode),
		ShipDate:    shipengine.NewTimestamp(r.ShipDate),
		ShipTo:      r.ShipTo.toRemote(),
		ShipFrom:    r.ShipFrom.toRemote(),
		Packages:    make([]shipengine.Package, 0, len(r.Packages)),
	}
	if r.ReturnTo != nil {
		ret := r.ReturnTo.toRemote()
		w.ReturnTo = &ret
	}
	for _, p := range r.Packages {
		w.Packages = append(w.Packages, p.toRemote())
	}
	return w
}

func (a AddressInput) toRemote() shipengine.Address {
	return shipengine.Address{
		Name:          a.Name,
		Phone:         a.Phone,
		CompanyName:   utils.StringPtr(a.Company),
		AddressLine1:  a.Line1(),
		AddressLine2:  utils.StringPtr(a.AddressLine2),
		CityLocality:  a.City,
		StateProvince: a.State,
		PostalCode:    a.Postal(),
		CountryCode:   strings.ToUpper(a.CountryCode),
	}
}

func (p PackageInput) toRemote() shipengine.Package {
	unit := p.WeightUnit
	if unit == "" {
		unit = "pound"
	}
	pkg := shipengine.Package{
		Weight: shipengine.Quantity{Value: p.Weight, Unit: unit, Set: true},
	}
	if p.Length > 0 || p.Width > 0 || p.Height > 0 {
		dimUnit := p.DimensionUnit
		if dimUnit == "" {
			dimUnit = "inch"
		}
		pkg.Dimensions = &shipengine.Dimensions{
			Unit:   dimUnit,
			Length: shipengine.Quantity{Value: p.Length, Set: true},
			Width:  shipengine.Quantity{Value: p.Width, Set: true},
			Height: shipengine.Quantity{Value: p.Height, Set: true},
		}
	}
	return pkg
}

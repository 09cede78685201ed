package shipengine

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"shipment-gateway/core/utils"

	"github.com/goccy/go-json"
)

// Shipment statuses as reported by the API.
const (
	StatusPending        = "pending"
	StatusLabelPurchased = "label_purchased"
	StatusCancelled      = "cancelled"
)

// Shipment is the wire form of a shipment.
type Shipment struct {
	ShipmentID     string     `json:"shipment_id,omitempty"`
	CarrierID      *string    `json:"carrier_id"`
	ServiceCode    *string    `json:"service_code"`
	ShipmentStatus string     `json:"shipment_status,omitempty"`
	CreatedAt      *Timestamp `json:"created_at,omitempty"`
	ShipDate       *Timestamp `json:"ship_date,omitempty"`
	ShipTo         Address    `json:"ship_to"`
	ShipFrom       Address    `json:"ship_from"`
	ReturnTo       *Address   `json:"return_to,omitempty"`
	Packages       []Package  `json:"packages"`
	TotalWeight    *Quantity  `json:"total_weight,omitempty"`
}

// Address is the wire form of an address.
type Address struct {
	Name                        string  `json:"name"`
	Phone                       string  `json:"phone"`
	CompanyName                 *string `json:"company_name,omitempty"`
	AddressLine1                string  `json:"address_line1"`
	AddressLine2                *string `json:"address_line2,omitempty"`
	AddressLine3                *string `json:"address_line3,omitempty"`
	CityLocality                string  `json:"city_locality"`
	StateProvince               string  `json:"state_province"`
	PostalCode                  string  `json:"postal_code"`
	CountryCode                 string  `json:"country_code"`
	AddressResidentialIndicator string  `json:"address_residential_indicator,omitempty"`
}

// Package is the wire form of a package. Integrations send dimensions either
// nested under "dimensions" or as flat length/width/height scalars.
type Package struct {
	Weight       Quantity    `json:"weight"`
	Dimensions   *Dimensions `json:"dimensions,omitempty"`
	InsuredValue *Money      `json:"insured_value,omitempty"`
	Length       *Quantity   `json:"length,omitempty"`
	Width        *Quantity   `json:"width,omitempty"`
	Height       *Quantity   `json:"height,omitempty"`
}

// Dimensions is the nested package size.
type Dimensions struct {
	Unit   string   `json:"unit"`
	Length Quantity `json:"length"`
	Width  Quantity `json:"width"`
	Height Quantity `json:"height"`
}

// Quantity is a measured value. It decodes from a bare number, a numeric
// string or an object carrying "value" (or "amount") and "unit".
type Quantity struct {
	Value float64
	Unit  string
	// Set reports whether a value was present on the wire.
	Set bool
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	v, unit, set, err := decodeLoose(b, []string{"value", "amount"}, []string{"unit"})
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	*q = Quantity{Value: v, Unit: unit, Set: set}
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Set {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit,omitempty"`
	}{q.Value, q.Unit})
}

// Money is a monetary amount. It decodes like Quantity but reads
// "amount"/"currency".
type Money struct {
	Amount   float64
	Currency string
	Set      bool
}

func (m *Money) UnmarshalJSON(b []byte) error {
	v, currency, set, err := decodeLoose(b, []string{"amount", "value"}, []string{"currency", "unit"})
	if err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = Money{Amount: v, Currency: currency, Set: set}
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	if !m.Set {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency,omitempty"`
	}{m.Amount, m.Currency})
}

func decodeLoose(b []byte, valueKeys, unitKeys []string) (float64, string, bool, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return 0, "", false, err
	}

	switch v := raw.(type) {
	case nil:
		return 0, "", false, nil
	case map[string]any:
		var unit string
		for _, k := range unitKeys {
			if unit = utils.ToString(v[k]); unit != "" {
				break
			}
		}
		for _, k := range valueKeys {
			if f, ok := utils.ToFloat(v[k]); ok {
				return f, unit, true, nil
			}
		}
		return 0, unit, false, nil
	default:
		f, ok := utils.ToFloat(v)
		if !ok {
			return 0, "", false, fmt.Errorf("unsupported value %s", b)
		}
		return f, "", true, nil
	}
}

// Timestamp accepts RFC 3339 timestamps and bare dates.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// NewTimestamp wraps t, returning nil for the zero time.
func NewTimestamp(t time.Time) *Timestamp {
	if t.IsZero() {
		return nil
	}
	return &Timestamp{Time: t}
}

// ListShipmentsResponse is one page of GET /shipments.
type ListShipmentsResponse struct {
	Shipments []Shipment `json:"shipments"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Pages     int        `json:"pages"`
}

// CreateShipmentsRequest is the body of POST /shipments.
type CreateShipmentsRequest struct {
	Shipments []Shipment `json:"shipments"`
}

// CreatedShipment is a shipment in a create response, with per-shipment errors.
type CreatedShipment struct {
	Shipment
	Errors []APIError `json:"errors,omitempty"`
}

// CreateShipmentsResponse is the answer to POST /shipments.
type CreateShipmentsResponse struct {
	HasErrors bool              `json:"has_errors"`
	Shipments []CreatedShipment `json:"shipments"`
}

// APIError is an error entry returned by the API.
type APIError struct {
	ErrorSource string `json:"error_source"`
	ErrorType   string `json:"error_type"`
	ErrorCode   string `json:"error_code"`
	Message     string `json:"message"`
}

// Carrier is a connected carrier account.
type Carrier struct {
	CarrierID     string    `json:"carrier_id"`
	CarrierCode   string    `json:"carrier_code"`
	AccountNumber string    `json:"account_number"`
	Nickname      string    `json:"nickname"`
	FriendlyName  string    `json:"friendly_name"`
	Name          string    `json:"name"`
	Primary       bool      `json:"primary"`
	Services      []Service `json:"services"`
}

// DisplayName is the friendly name, falling back to the name.
func (c Carrier) DisplayName() string {
	if c.FriendlyName != "" {
		return c.FriendlyName
	}
	return c.Name
}

// Service is a shipping service offered by a carrier.
type Service struct {
	CarrierID     string `json:"carrier_id"`
	CarrierCode   string `json:"carrier_code"`
	ServiceCode   string `json:"service_code"`
	Name          string `json:"name"`
	Domestic      bool   `json:"domestic"`
	International bool   `json:"international"`
}

type listCarriersResponse struct {
	Carriers []Carrier `json:"carriers"`
}

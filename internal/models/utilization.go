package models

// UtilizationRecord is one tariff observation for a connector. A station may
// carry many rows per connector (tariff history), so row count and connector
// count are different things.
type UtilizationRecord struct {
	StationID      string  `json:"station_id"`
	ConnectionType string  `json:"connection_type"`
	ConnectorID    string  `json:"connector_id"`
	Price          float64 `json:"price"`
	Unit           string  `json:"unit"`
	ExtraTariff    *string `json:"extra_tariff"`
	Currency       string  `json:"currency"`
	HasVAT         bool    `json:"has_vat"`
	VATLocation    string  `json:"vat_location"`
	Timestamp      int64   `json:"timestamp"`
}

// HasExtraTariff reports whether an extra tariff is recorded. An empty string
// is treated the same as a missing value.
func (r UtilizationRecord) HasExtraTariff() bool {
	return r.ExtraTariff != nil && *r.ExtraTariff != ""
}

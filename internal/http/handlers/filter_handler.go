package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"chargefleet/internal/filter"
	"chargefleet/internal/service"
)

type filterRequest struct {
	Amenities     []string `json:"amenities"`
	MaxConnectors int      `json:"max_connectors"`
	VAT           string   `json:"vat"`
	ExtraTariff   string   `json:"extra_tariff"`
}

func (req *filterRequest) predicates() *filter.Predicates {
	return &filter.Predicates{
		RequiredAmenities: req.Amenities,
		MaxConnectors:     req.MaxConnectors,
		VAT:               filter.VATFilter(strings.ToLower(strings.TrimSpace(req.VAT))),
		ExtraTariff:       filter.TariffFilter(strings.ToLower(strings.TrimSpace(req.ExtraTariff))),
	}
}

// decodePredicates reads the predicate set from the request body. An empty
// body means the filter controls are not initialized yet, which the engine
// answers with the full data set.
func decodePredicates(r *http.Request) (*filter.Predicates, error) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return req.predicates(), nil
}

// NewFilterHandler returns POST /filter handler.
func NewFilterHandler(svc *service.ChargingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		predicates, err := decodePredicates(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		result := svc.ApplyFilter(predicates)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"stations":             result.Stations,
			"records":              result.Records,
			"location_count":       result.LocationCount,
			"charging_point_count": result.ChargingPointCount,
			"map":                  result.Map,
		})
	}
}

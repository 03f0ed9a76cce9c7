package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"chargefleet/internal/filter"
	"chargefleet/internal/inject"
	"chargefleet/internal/service"
)

// InjectHandler serves the synthetic data injection endpoint.
type InjectHandler struct {
	svc          *service.ChargingService
	defaultCount int
	logger       *zap.Logger
}

// NewInjectHandler builds handler.
func NewInjectHandler(svc *service.ChargingService, defaultCount int, logger *zap.Logger) *InjectHandler {
	return &InjectHandler{
		svc:          svc,
		defaultCount: defaultCount,
		logger:       logger,
	}
}

type injectRequest struct {
	Count         int      `json:"count"`
	Amenities     []string `json:"amenities"`
	MaxConnectors int      `json:"max_connectors"`
	VAT           string   `json:"vat"`
	ExtraTariff   string   `json:"extra_tariff"`
}

// Handle handles POST /inject. The predicate fields scope which stations are
// injection candidates, matching what the caller currently sees.
func (h *InjectHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req injectRequest
	var predicates *filter.Predicates
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
	} else {
		predicates = &filter.Predicates{
			RequiredAmenities: req.Amenities,
			MaxConnectors:     req.MaxConnectors,
			VAT:               filter.VATFilter(strings.ToLower(strings.TrimSpace(req.VAT))),
			ExtraTariff:       filter.TariffFilter(strings.ToLower(strings.TrimSpace(req.ExtraTariff))),
		}
	}

	count := req.Count
	if count <= 0 {
		count = h.defaultCount
	}

	result, err := h.svc.InjectRandom(count, predicates)
	if err != nil {
		switch {
		case errors.Is(err, inject.ErrEmptyCandidateSet):
			writeError(w, http.StatusConflict, "current filter matches no stations, nothing to inject")
		case errors.Is(err, inject.ErrMissingTemplate):
			writeError(w, http.StatusConflict, err.Error())
		default:
			h.logger.Error("injection failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to inject data")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"station_id": result.StationID,
		"added":      result.Added,
		"message":    result.Message,
	})
}

package inject

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"chargefleet/internal/models"
)

// Injector failure modes, surfaced to the caller as user-visible messages.
var (
	ErrEmptyCandidateSet = errors.New("no candidate stations available for injection")
	ErrMissingTemplate   = errors.New("station has no recorded connectors to copy from")
)

const backdateWindow = 30 * 24 * time.Hour

// Injector generates synthetic tariff rows from existing ones. The random
// source is injectable so tests can pin the sequence.
type Injector struct {
	rng *rand.Rand
}

// NewInjector builds an injector. A nil rng gets a time-based seed.
func NewInjector(rng *rand.Rand) *Injector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Injector{rng: rng}
}

// Inject picks one station from candidates and appends n synthetic rows
// modelled on that station's existing connectors. The input table is left
// untouched; the returned table is a copy with the new rows at the end.
func (inj *Injector) Inject(n int, candidates []string, table []models.UtilizationRecord) ([]models.UtilizationRecord, string, error) {
	if len(candidates) == 0 {
		return nil, "", ErrEmptyCandidateSet
	}

	stationID := candidates[inj.rng.Intn(len(candidates))]

	// First-seen order, one template row per connector.
	var connectors []string
	templates := make(map[string]models.UtilizationRecord)
	for _, r := range table {
		if r.StationID != stationID {
			continue
		}
		if _, ok := templates[r.ConnectorID]; !ok {
			templates[r.ConnectorID] = r
			connectors = append(connectors, r.ConnectorID)
		}
	}
	if len(connectors) == 0 {
		return nil, "", fmt.Errorf("station %s: %w", stationID, ErrMissingTemplate)
	}

	out := make([]models.UtilizationRecord, len(table), len(table)+n)
	copy(out, table)

	for i := 0; i < n; i++ {
		template := templates[connectors[inj.rng.Intn(len(connectors))]]
		out = append(out, models.UtilizationRecord{
			StationID:      stationID,
			ConnectionType: template.ConnectionType,
			ConnectorID:    template.ConnectorID,
			Price:          inj.randomPrice(template.Currency),
			Unit:           "kWh",
			ExtraTariff:    nil,
			Currency:       template.Currency,
			HasVAT:         false,
			VATLocation:    "",
			Timestamp:      inj.backdatedTimestamp(template.Timestamp),
		})
	}
	return out, stationID, nil
}

// randomPrice draws a plausible price for the currency, rounded to cents.
func (inj *Injector) randomPrice(currency string) float64 {
	var lo, hi float64
	switch currency {
	case "DKK", "kr":
		lo, hi = 2.0, 7.0
	case "EUR":
		lo, hi = 0.20, 0.90
	case "SEK":
		lo, hi = 2.0, 12.0
	default:
		lo, hi = 1.0, 6.0
	}
	return math.Round((lo+inj.rng.Float64()*(hi-lo))*100) / 100
}

// backdatedTimestamp draws uniformly from the 30 days before ref, so
// synthetic rows are never future-dated relative to their template.
func (inj *Injector) backdatedTimestamp(ref int64) int64 {
	window := int64(backdateWindow / time.Second)
	start := ref - window
	return start + int64(inj.rng.Float64()*float64(window))
}

package filter

import (
	"sync"

	"chargefleet/internal/facets"
	"chargefleet/internal/models"
	"chargefleet/internal/store"
)

// Engine computes the cross-matched subset of stations and utilization rows
// for a predicate set. Station predicates and record predicates are applied
// independently, then both sides are restricted to the station ids surviving
// on BOTH sides: a station with no surviving rows disappears, and so do rows
// whose station was filtered out.
type Engine struct {
	store *store.Store

	mu           sync.Mutex
	memoVersion  uint64
	memoKey      string
	memoStations []models.Station
	memoRecords  []models.UtilizationRecord
	memoValid    bool
}

// NewEngine builds a filter engine over the given store.
func NewEngine(st *store.Store) *Engine {
	return &Engine{store: st}
}

// Apply evaluates the predicate set against the current store snapshot.
// Results are memoized by (store version, predicate key); a store mutation
// invalidates the memo automatically.
func (e *Engine) Apply(p *Predicates) ([]models.Station, []models.UtilizationRecord) {
	stations, utilization, version := e.store.Snapshot()

	e.mu.Lock()
	if e.memoValid && e.memoVersion == version && e.memoKey == p.Key() {
		outStations := cloneStations(e.memoStations)
		outRecords := append([]models.UtilizationRecord(nil), e.memoRecords...)
		e.mu.Unlock()
		return outStations, outRecords
	}
	e.mu.Unlock()

	outStations, outRecords := apply(stations, utilization, p)

	e.mu.Lock()
	e.memoVersion = version
	e.memoKey = p.Key()
	e.memoStations = cloneStations(outStations)
	e.memoRecords = append([]models.UtilizationRecord(nil), outRecords...)
	e.memoValid = true
	e.mu.Unlock()

	return outStations, outRecords
}

// cloneStations deep-copies the amenity slices so memoized results never
// share backing arrays with what callers got back.
func cloneStations(in []models.Station) []models.Station {
	out := make([]models.Station, len(in))
	copy(out, in)
	for i := range out {
		out[i].Amenities = append([]string(nil), out[i].Amenities...)
	}
	return out
}

func apply(stations []models.Station, utilization []models.UtilizationRecord, p *Predicates) ([]models.Station, []models.UtilizationRecord) {
	if p == nil {
		return stations, utilization
	}

	// Pass 1: station-level predicates.
	candidateStations := make([]models.Station, 0, len(stations))
	for _, s := range stations {
		if s.HasAmenities(p.RequiredAmenities) {
			candidateStations = append(candidateStations, s)
		}
	}

	// Pass 2: record-level predicates. Connector counts come from the full
	// snapshot so tariff history depth never skews the bound.
	counts := facets.ConnectorCounts(utilization)
	candidateRecords := make([]models.UtilizationRecord, 0, len(utilization))
	for _, r := range utilization {
		if !recordPasses(r, counts[r.StationID], p) {
			continue
		}
		candidateRecords = append(candidateRecords, r)
	}

	// Pass 3: keep only station ids surviving on both sides.
	stationIDs := make(map[string]bool, len(candidateStations))
	for _, s := range candidateStations {
		stationIDs[s.ID] = true
	}
	recordIDs := make(map[string]bool)
	for _, r := range candidateRecords {
		recordIDs[r.StationID] = true
	}

	outStations := make([]models.Station, 0, len(candidateStations))
	for _, s := range candidateStations {
		if recordIDs[s.ID] {
			outStations = append(outStations, s)
		}
	}
	outRecords := make([]models.UtilizationRecord, 0, len(candidateRecords))
	for _, r := range candidateRecords {
		if stationIDs[r.StationID] {
			outRecords = append(outRecords, r)
		}
	}
	return outStations, outRecords
}

func recordPasses(r models.UtilizationRecord, connectorCount int, p *Predicates) bool {
	if p.MaxConnectors >= 1 && connectorCount > p.MaxConnectors {
		return false
	}

	switch p.VAT {
	case VATRequired:
		if !r.HasVAT {
			return false
		}
	case VATExcluded:
		if r.HasVAT {
			return false
		}
	}

	switch p.ExtraTariff {
	case TariffPresent:
		if !r.HasExtraTariff() {
			return false
		}
	case TariffAbsent:
		if r.HasExtraTariff() {
			return false
		}
	}
	return true
}

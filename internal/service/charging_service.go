package service

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"chargefleet/internal/aggregate"
	"chargefleet/internal/facets"
	"chargefleet/internal/filter"
	"chargefleet/internal/inject"
	"chargefleet/internal/models"
	"chargefleet/internal/store"
)

// Broadcaster pushes events to connected map clients.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// ChargingService ties the record store, facet derivation, filter engine and
// synthetic injector together. Injection is the only mutation path and is
// serialized behind the service mutex.
type ChargingService struct {
	store       *store.Store
	engine      *filter.Engine
	injector    *inject.Injector
	broadcaster Broadcaster
	logger      *zap.Logger

	mu            sync.Mutex
	facetsCache   facets.Facets
	facetsVersion uint64
	facetsReady   bool
}

// NewChargingService builds service.
func NewChargingService(
	st *store.Store,
	engine *filter.Engine,
	injector *inject.Injector,
	broadcaster Broadcaster,
	logger *zap.Logger,
) *ChargingService {
	return &ChargingService{
		store:       st,
		engine:      engine,
		injector:    injector,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Facets returns the current filter choices, recomputing when the store has
// moved past the cached version.
func (s *ChargingService) Facets() facets.Facets {
	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.store.Version()
	if !s.facetsReady || version != s.facetsVersion {
		stations, utilization, v := s.store.Snapshot()
		s.facetsCache = facets.Compute(stations, utilization)
		s.facetsVersion = v
		s.facetsReady = true
	}
	return s.facetsCache
}

// FilterResult is the cross-matched output plus its derived aggregates.
type FilterResult struct {
	Stations           []models.Station
	Records            []models.UtilizationRecord
	LocationCount      int
	ChargingPointCount int
	Map                MapPayload
}

// ApplyFilter runs the filter engine and derives the summary aggregates.
func (s *ChargingService) ApplyFilter(p *filter.Predicates) FilterResult {
	stations, records := s.engine.Apply(p)
	return FilterResult{
		Stations:           stations,
		Records:            records,
		LocationCount:      aggregate.LocationCount(stations),
		ChargingPointCount: aggregate.ChargingPointCount(records),
		Map:                BuildMapPayload(stations),
	}
}

// ConnectorsPage returns one page of a station's distinct connector ids.
func (s *ChargingService) ConnectorsPage(stationID string, page, pageSize int) aggregate.Page {
	ids := aggregate.DistinctConnectors(s.store.Utilization(), stationID)
	return aggregate.Paginate(ids, page, pageSize)
}

// InjectResult reports a successful injection.
type InjectResult struct {
	StationID string
	Added     int
	Message   string
}

// InjectRandom appends n synthetic tariff rows for a station drawn from the
// current filter result. On failure the store is left unmodified and the
// error carries the user-facing reason.
func (s *ChargingService) InjectRandom(n int, p *filter.Predicates) (InjectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filteredStations, filtered := s.engine.Apply(p)
	candidates := stationIDs(filtered)

	table := s.store.Utilization()
	newTable, stationID, err := s.injector.Inject(n, candidates, table)
	if err != nil {
		s.logger.Warn("injection rejected", zap.Error(err))
		return InjectResult{}, err
	}

	s.store.ReplaceUtilization(newTable)

	s.logger.Info("injected synthetic tariff rows",
		zap.String("station_id", stationID),
		zap.Int("rows", n))

	// Injection only adds rows for connectors a filtered station already
	// has, so the station set computed above still holds after the append.
	if s.broadcaster != nil {
		s.broadcaster.Broadcast("update_map", BuildMapPayload(filteredStations))
	}

	return InjectResult{
		StationID: stationID,
		Added:     n,
		Message:   fmt.Sprintf("added %d synthetic tariff rows for station %s", n, stationID),
	}, nil
}

func stationIDs(records []models.UtilizationRecord) []string {
	seen := make(map[string]bool, len(records))
	var ids []string
	for _, r := range records {
		if !seen[r.StationID] {
			seen[r.StationID] = true
			ids = append(ids, r.StationID)
		}
	}
	return ids
}

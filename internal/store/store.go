package store

import (
	"sync"

	"chargefleet/internal/models"
)

// Store holds the two in-memory tables. Reads return defensive copies so
// downstream filtering never touches the stored rows; every mutation bumps
// the version counter so cached derivations know they are stale.
type Store struct {
	mu          sync.RWMutex
	stations    []models.Station
	utilization []models.UtilizationRecord
	version     uint64
}

// New builds an empty store.
func New() *Store {
	return &Store{}
}

// Load replaces both tables, typically once at startup.
func (s *Store) Load(stations []models.Station, utilization []models.UtilizationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations = copyStations(stations)
	s.utilization = copyUtilization(utilization)
	s.version++
}

// Stations returns a copy of the station table.
func (s *Store) Stations() []models.Station {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStations(s.stations)
}

// Utilization returns a copy of the utilization table.
func (s *Store) Utilization() []models.UtilizationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUtilization(s.utilization)
}

// ReplaceUtilization swaps the utilization table, used by the synthetic
// injector to append generated rows.
func (s *Store) ReplaceUtilization(utilization []models.UtilizationRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.utilization = copyUtilization(utilization)
	s.version++
}

// Version returns the current mutation counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns both tables and the version they belong to in one
// atomic read.
func (s *Store) Snapshot() ([]models.Station, []models.UtilizationRecord, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStations(s.stations), copyUtilization(s.utilization), s.version
}

func copyStations(in []models.Station) []models.Station {
	out := make([]models.Station, len(in))
	copy(out, in)
	for i := range out {
		out[i].Amenities = append([]string(nil), out[i].Amenities...)
	}
	return out
}

func copyUtilization(in []models.UtilizationRecord) []models.UtilizationRecord {
	out := make([]models.UtilizationRecord, len(in))
	copy(out, in)
	return out
}

package facets

import (
	"sort"

	"chargefleet/internal/models"
)

// Facets are the derived filter choices offered to the UI.
type Facets struct {
	AmenityVocabulary []string `json:"amenities"`
	MaxConnectorCount int      `json:"max_connectors"`
	StationList       []string `json:"stations"`
}

// Compute derives facets from the current tables. Pure and idempotent:
// the same input always produces the same output, and empty tables yield
// empty vocabularies rather than errors.
func Compute(stations []models.Station, utilization []models.UtilizationRecord) Facets {
	vocab := make(map[string]bool)
	for _, s := range stations {
		for _, a := range s.Amenities {
			vocab[a] = true
		}
	}
	amenities := make([]string, 0, len(vocab))
	for a := range vocab {
		amenities = append(amenities, a)
	}
	sort.Strings(amenities)

	counts := ConnectorCounts(utilization)
	maxConnectors := 0
	stationIDs := make([]string, 0, len(counts))
	for id, n := range counts {
		stationIDs = append(stationIDs, id)
		if n > maxConnectors {
			maxConnectors = n
		}
	}
	sort.Strings(stationIDs)

	return Facets{
		AmenityVocabulary: amenities,
		MaxConnectorCount: maxConnectors,
		StationList:       stationIDs,
	}
}

// ConnectorCounts returns distinct connectors per station. Tariff history
// rows for the same connector count once.
func ConnectorCounts(utilization []models.UtilizationRecord) map[string]int {
	seen := make(map[string]map[string]bool)
	for _, r := range utilization {
		if seen[r.StationID] == nil {
			seen[r.StationID] = make(map[string]bool)
		}
		seen[r.StationID][r.ConnectorID] = true
	}
	counts := make(map[string]int, len(seen))
	for id, connectors := range seen {
		counts[id] = len(connectors)
	}
	return counts
}

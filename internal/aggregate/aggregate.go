package aggregate

import (
	"sort"

	"chargefleet/internal/models"
)

// LocationCount returns the number of distinct stations.
func LocationCount(stations []models.Station) int {
	seen := make(map[string]bool, len(stations))
	for _, s := range stations {
		seen[s.ID] = true
	}
	return len(seen)
}

// ChargingPointCount returns the number of distinct (station, connector)
// pairs. A connector with several tariff-history rows counts once.
func ChargingPointCount(utilization []models.UtilizationRecord) int {
	type point struct{ station, connector string }
	seen := make(map[point]bool, len(utilization))
	for _, r := range utilization {
		seen[point{r.StationID, r.ConnectorID}] = true
	}
	return len(seen)
}

// DistinctConnectors returns the sorted distinct connector ids recorded for
// one station.
func DistinctConnectors(utilization []models.UtilizationRecord, stationID string) []string {
	seen := make(map[string]bool)
	for _, r := range utilization {
		if r.StationID == stationID {
			seen[r.ConnectorID] = true
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Page is one pagination window over a connector list.
type Page struct {
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	Items      []string `json:"items"`
}

// Paginate slices ids into 1-indexed pages. A page beyond range yields an
// empty slice, never an error; zero items yield zero pages.
func Paginate(ids []string, page, pageSize int) Page {
	if pageSize < 1 || len(ids) == 0 {
		return Page{Page: page, TotalPages: 0, Items: []string{}}
	}

	totalPages := (len(ids) + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if page < 1 || start >= len(ids) {
		return Page{Page: page, TotalPages: totalPages, Items: []string{}}
	}
	end := start + pageSize
	if end > len(ids) {
		end = len(ids)
	}
	return Page{
		Page:       page,
		TotalPages: totalPages,
		Items:      append([]string(nil), ids[start:end]...),
	}
}

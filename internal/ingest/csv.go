package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"chargefleet/internal/models"
)

const (
	stationsFile    = "charging_stations.csv"
	utilizationFile = "tariff_historical.csv"
)

// LoadDir reads the two CSV exports from dir.
func LoadDir(dir string) ([]models.Station, []models.UtilizationRecord, error) {
	stations, err := LoadStations(filepath.Join(dir, stationsFile))
	if err != nil {
		return nil, nil, err
	}
	utilization, err := LoadUtilization(filepath.Join(dir, utilizationFile))
	if err != nil {
		return nil, nil, err
	}
	return stations, utilization, nil
}

// LoadStations parses the charging station table.
func LoadStations(path string) ([]models.Station, error) {
	rows, cols, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	stations := make([]models.Station, 0, len(rows))
	for _, row := range rows {
		id := cols.get(row, "id")
		if id == "" {
			continue
		}
		// The upstream export spells coordinates without the final "e".
		lat, latErr := strconv.ParseFloat(cols.first(row, "latitude", "latitud"), 64)
		lng, lngErr := strconv.ParseFloat(cols.first(row, "longitude", "longitud"), 64)
		if latErr != nil || lngErr != nil {
			continue
		}
		total, _ := strconv.Atoi(cols.get(row, "total_connectors"))

		stations = append(stations, models.Station{
			ID:              id,
			Name:            cols.get(row, "name"),
			Address:         cols.get(row, "address"),
			Description:     cols.get(row, "description"),
			Latitude:        lat,
			Longitude:       lng,
			Amenities:       ParseAmenities(cols.get(row, "amenities")),
			TotalConnectors: total,
		})
	}
	return stations, nil
}

// LoadUtilization parses the tariff history table.
func LoadUtilization(path string) ([]models.UtilizationRecord, error) {
	rows, cols, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	records := make([]models.UtilizationRecord, 0, len(rows))
	for _, row := range rows {
		stationID := cols.get(row, "station_id")
		connectorID := cols.first(row, "connector_id", "id")
		if stationID == "" || connectorID == "" {
			continue
		}
		price, _ := strconv.ParseFloat(cols.get(row, "price"), 64)
		hasVAT, _ := strconv.ParseBool(cols.get(row, "has_vat"))
		// Timestamps occasionally arrive in float form.
		tsFloat, _ := strconv.ParseFloat(cols.get(row, "timestamp"), 64)

		var extra *string
		if v := strings.TrimSpace(cols.get(row, "extra_tariff")); v != "" {
			extra = &v
		}

		records = append(records, models.UtilizationRecord{
			StationID:      stationID,
			ConnectionType: cols.get(row, "connection_type"),
			ConnectorID:    connectorID,
			Price:          price,
			Unit:           cols.get(row, "unit"),
			ExtraTariff:    extra,
			Currency:       cols.get(row, "currency"),
			HasVAT:         hasVAT,
			VATLocation:    cols.get(row, "vat_location"),
			Timestamp:      int64(tsFloat),
		})
	}
	return records, nil
}

// ParseAmenities turns the textual list encoding into a sorted, de-duplicated
// tag set. Malformed values degrade to an empty set rather than erroring.
func ParseAmenities(raw string) []string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return []string{}
	}

	// The export writes Python list literals with single quotes.
	normalized := strings.ReplaceAll(raw, "'", `"`)
	var tags []string
	if err := json.Unmarshal([]byte(normalized), &tags); err == nil {
		return dedupeTags(tags)
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(raw, "["), "]")
	tags = tags[:0]
	for _, part := range strings.Split(inner, ",") {
		part = strings.Trim(strings.TrimSpace(part), `'"`)
		if part != "" {
			tags = append(tags, part)
		}
	}
	return dedupeTags(tags)
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// columns maps lowercase header names to their position.
type columns map[string]int

func (c columns) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (c columns) first(row []string, names ...string) string {
	for _, name := range names {
		if v := c.get(row, name); v != "" {
			return v
		}
	}
	return ""
}

func readCSV(path string) ([][]string, columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: read headers %s: %w", path, err)
	}
	cols := make(columns, len(headers))
	for i, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		rows = append(rows, row)
	}
	return rows, cols, nil
}

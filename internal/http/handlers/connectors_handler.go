package handlers

import (
	"net/http"
	"strconv"

	"chargefleet/internal/service"
)

// NewConnectorsHandler returns GET /connectors handler serving one page of a
// station's distinct connector ids.
func NewConnectorsHandler(svc *service.ChargingService, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stationID := r.URL.Query().Get("station_id")
		if stationID == "" {
			writeError(w, http.StatusBadRequest, "station_id is required")
			return
		}

		page := queryInt(r, "page", 1)
		pageSize := queryInt(r, "page_size", defaultPageSize)

		result := svc.ConnectorsPage(stationID, page, pageSize)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"station_id":  stationID,
			"page":        result.Page,
			"total_pages": result.TotalPages,
			"connectors":  result.Items,
		})
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

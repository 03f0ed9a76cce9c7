package handlers

import (
	"net/http"

	"chargefleet/internal/service"
)

// NewFacetsHandler returns GET /facets handler.
func NewFacetsHandler(svc *service.ChargingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Facets())
	}
}

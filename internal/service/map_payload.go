package service

import "chargefleet/internal/models"

// LatLng is a map coordinate.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is one station pin on the map.
type Marker struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
}

// MapPayload is what the map client needs to redraw: a center point and one
// marker per filtered station.
type MapPayload struct {
	Center  LatLng   `json:"center"`
	Markers []Marker `json:"markers"`
}

// BuildMapPayload centers the map on the mean coordinate of the stations.
func BuildMapPayload(stations []models.Station) MapPayload {
	payload := MapPayload{Markers: make([]Marker, 0, len(stations))}
	if len(stations) == 0 {
		return payload
	}

	var sumLat, sumLng float64
	for _, s := range stations {
		sumLat += s.Latitude
		sumLng += s.Longitude
		payload.Markers = append(payload.Markers, Marker{
			Lat:     s.Latitude,
			Lng:     s.Longitude,
			Name:    s.Name,
			Address: s.Address,
		})
	}
	payload.Center = LatLng{
		Lat: sumLat / float64(len(stations)),
		Lng: sumLng / float64(len(stations)),
	}
	return payload
}

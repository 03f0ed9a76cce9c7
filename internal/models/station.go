package models

// Station is one physical charging site.
type Station struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Address         string   `json:"address"`
	Description     string   `json:"description"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Amenities       []string `json:"amenities"`
	TotalConnectors int      `json:"total_connectors"`
}

// HasAmenities reports whether every required tag is present.
func (s Station) HasAmenities(required []string) bool {
	if len(required) == 0 {
		return true
	}
	tags := make(map[string]bool, len(s.Amenities))
	for _, a := range s.Amenities {
		tags[a] = true
	}
	for _, want := range required {
		if !tags[want] {
			return false
		}
	}
	return true
}

package catalog

import (
	_ "embed"
	"encoding/json"

	"github.com/dpatangia0001/IGNIS-CAC-sub000/internal/domain"
)

// seedJSON is the bundled static dataset used when every source fails and no
// catalog has ever been published. It is deliberately small and dated; its
// only job is to keep the application from showing zero data.
//
//go:embed seed.json
var seedJSON []byte

type seedRecord struct {
	Name        string  `json:"name"`
	AcresBurned float64 `json:"acres_burned"`
	Containment float64 `json:"percent_contained"`
	Active      bool    `json:"is_active"`
	StartDate   string  `json:"start_date"`
	County      string  `json:"county"`
	Location    string  `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	URL         string  `json:"url"`
}

// Seed returns the bundled fallback dataset as raw incidents, ready for the
// normal merge path.
func Seed() []domain.RawIncident {
	var records []seedRecord
	if err := json.Unmarshal(seedJSON, &records); err != nil {
		// The seed ships with the binary; failing to parse it is a build
		// defect, not a runtime condition worth handling.
		panic("catalog: malformed embedded seed dataset: " + err.Error())
	}

	raws := make([]domain.RawIncident, 0, len(records))
	for _, r := range records {
		raws = append(raws, domain.RawIncident{
			Name:        r.Name,
			AcresBurned: r.AcresBurned,
			Containment: r.Containment,
			Active:      r.Active,
			StartDate:   r.StartDate,
			County:      r.County,
			Location:    r.Location,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			URL:         r.URL,
			Source:      "seed",
		})
	}
	return raws
}

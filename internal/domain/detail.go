package domain

import "time"

// IncidentDetail holds the structured operational facts scraped from an
// incident's detail page, keyed by that page's URL in the detail cache.
//
// Every list field is nil when the page yielded nothing for that category,
// never an empty slice. The UI uses presence to decide whether a section
// renders at all.
type IncidentDetail struct {
	RoadClosures   []string       `json:"road_closures,omitempty"`
	Shelters       []ShelterEntry `json:"shelters,omitempty"`
	AnimalShelters []ShelterEntry `json:"animal_shelters,omitempty"`
	EvacPoints     []ShelterEntry `json:"evacuation_points,omitempty"`
	Resources      []Metric       `json:"resources,omitempty"`
	Damage         []Metric       `json:"damage,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Empty reports whether extraction produced nothing at all.
func (d IncidentDetail) Empty() bool {
	return d.RoadClosures == nil &&
		d.Shelters == nil &&
		d.AnimalShelters == nil &&
		d.EvacPoints == nil &&
		d.Resources == nil &&
		d.Damage == nil
}

// ShelterEntry is one evacuation shelter, animal shelter, or temporary
// evacuation point. Address and Note are optional.
type ShelterEntry struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Metric is a labelled count, e.g. {"Engines", 12} or
// {"Structures Destroyed", 3}.
type Metric struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// EvacZones maps counties to evacuation zone identifiers, split by level:
// orders are Level 3 ("go now"), warnings Level 2. Derived per request from
// raw markup and never cached.
type EvacZones struct {
	Orders   map[string][]string `json:"orders,omitempty"`
	Warnings map[string][]string `json:"warnings,omitempty"`
}

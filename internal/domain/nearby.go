package domain

import (
	"math"
	"sort"
)

const (
	earthRadiusKM  = 6371
	nearbyRadiusKM = 100
	nearbyLimit    = 5
)

// NearbyFire is an active incident within range of a queried point.
type NearbyFire struct {
	Name        string  `json:"name"`
	DistanceKM  float64 `json:"distance_km"`
	AcresBurned float64 `json:"acres_burned"`
	Containment float64 `json:"percent_contained"`
	ThreatLevel string  `json:"threat_level"`
}

// NearbyFires returns the closest active fires within 100 km of the given
// point, nearest first, capped at five. Incidents with unknown coordinates
// (0,0) are skipped.
func NearbyFires(incidents []Incident, lat, lon float64) []NearbyFire {
	var nearby []NearbyFire
	for _, inc := range incidents {
		if !inc.Active {
			continue
		}
		if inc.Latitude == 0 && inc.Longitude == 0 {
			continue
		}
		d := haversineKM(lat, lon, inc.Latitude, inc.Longitude)
		if d > nearbyRadiusKM {
			continue
		}
		nearby = append(nearby, NearbyFire{
			Name:        inc.Name,
			DistanceKM:  math.Round(d*10) / 10,
			AcresBurned: inc.AcresBurned,
			Containment: inc.Containment,
			ThreatLevel: threatLevel(d),
		})
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKM < nearby[j].DistanceKM
	})
	if len(nearby) > nearbyLimit {
		nearby = nearby[:nearbyLimit]
	}
	return nearby
}

// threatLevel buckets distance: under 10 km High, under 30 km Moderate,
// otherwise Low.
func threatLevel(distanceKM float64) string {
	switch {
	case distanceKM < 10:
		return "High"
	case distanceKM < 30:
		return "Moderate"
	default:
		return "Low"
	}
}

// haversineKM computes the great-circle distance between two WGS-84 points.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Asin(math.Sqrt(a))
}

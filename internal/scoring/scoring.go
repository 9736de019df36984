// Package scoring defines the boundary to the external risk-scoring model.
// The decision engine never computes scores itself; it consumes whatever a
// Scorer produces.
package scoring

import "context"

// Features is the contextual input the model scores. Field semantics follow
// the upstream feature provider; the engine treats the result as opaque.
type Features struct {
	Latitude              float64 `json:"latitude"`
	Longitude             float64 `json:"longitude"`
	Hour                  *int    `json:"hour,omitempty"`
	DayOfWeek             *int    `json:"day_of_week,omitempty"`
	RoadType              string  `json:"road_type,omitempty"`
	POIDensity            float64 `json:"poi_density,omitempty"`
	PoliceStationDistance float64 `json:"police_station_distance,omitempty"`
	HospitalDistance      float64 `json:"hospital_distance,omitempty"`
	IntersectionCount     int     `json:"intersection_count,omitempty"`
	DeadEndNearby         int     `json:"dead_end_nearby,omitempty"`
	LightingScore         float64 `json:"lighting_score,omitempty"`
	CrowdDensity          float64 `json:"crowd_density,omitempty"`
}

// Scorer produces a risk score in [0,1] for a set of contextual features.
type Scorer interface {
	Score(ctx context.Context, f Features) (float64, error)
}

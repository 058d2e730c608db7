package models

import "time"

// Point is a georeferenced spot (plot, weather station) climate data is recorded for.
// Latitude and Longitude may be missing for rows imported from external sources.
type Point struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	ElevationM *float64   `json:"elevation_m,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// NearestPoint is the result of a nearest point lookup.
type NearestPoint struct {
	Nearest    Point   `json:"nearest"`
	DistanceKm float64 `json:"distance_km"`
	// IDs of points ignored because they have no coordinates
	SkippedPointIDs []int64 `json:"skipped_point_ids,omitempty"`
}

package models

import "time"

// ClimateRecord is one day of historical climate data for a point.
type ClimateRecord struct {
	ID              int64     `json:"id"`
	PointID         int64     `json:"point_id"`
	RecordDate      Date      `json:"record_date"`
	TemperatureAvgC *float64  `json:"temperature_avg_c,omitempty"`
	TemperatureMinC *float64  `json:"temperature_min_c,omitempty"`
	TemperatureMaxC *float64  `json:"temperature_max_c,omitempty"`
	PrecipitationMm *float64  `json:"precipitation_mm,omitempty"`
	HumidityPct     *float64  `json:"humidity_pct,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ClimateHistory is the climate of the point nearest to a query coordinate.
type ClimateHistory struct {
	Point      Point           `json:"point"`
	DistanceKm float64         `json:"distance_km"`
	Year       int             `json:"year,omitempty"`
	Records    []ClimateRecord `json:"records"`
}

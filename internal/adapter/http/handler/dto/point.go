package dto

import (
	"strings"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

// PointRequest creates or replaces a point. Coordinates are optional but come in pairs.
type PointRequest struct {
	Name       string   `json:"name"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	ElevationM *float64 `json:"elevation_m"`
}

func (r *PointRequest) Validate(v *validator.Validator) {
	v.Check(strings.TrimSpace(r.Name) != "", "name", "must be provided")
	v.Check(len(r.Name) <= 255, "name", "must not be more than 255 characters long")

	v.Check((r.Latitude == nil) == (r.Longitude == nil), "latitude", "latitude and longitude must be provided together")
	if r.Latitude != nil {
		v.Check(validator.Latitude(*r.Latitude), "latitude", "must be between -90 and 90")
	}
	if r.Longitude != nil {
		v.Check(validator.Longitude(*r.Longitude), "longitude", "must be between -180 and 180")
	}
	if r.ElevationM != nil {
		v.Check(validator.Between(*r.ElevationM, -500, 9000), "elevation_m", "must be between -500 and 9000")
	}
}

func (r *PointRequest) ToModel() *models.Point {
	return &models.Point{
		Name:       strings.TrimSpace(r.Name),
		Latitude:   r.Latitude,
		Longitude:  r.Longitude,
		ElevationM: r.ElevationM,
	}
}

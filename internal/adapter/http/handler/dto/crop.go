package dto

import (
	"strings"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

type CropRequest struct {
	Name      string `json:"name"`
	Variety   string `json:"variety"`
	CycleDays int    `json:"cycle_days"`
}

func (r *CropRequest) Validate(v *validator.Validator) {
	v.Check(strings.TrimSpace(r.Name) != "", "name", "must be provided")
	v.Check(len(r.Name) <= 255, "name", "must not be more than 255 characters long")
	v.Check(len(r.Variety) <= 255, "variety", "must not be more than 255 characters long")
	v.Check(r.CycleDays >= 0, "cycle_days", "must not be negative")
	v.Check(r.CycleDays <= 3650, "cycle_days", "must not be more than 3650")
}

func (r *CropRequest) ToModel() *models.Crop {
	return &models.Crop{
		Name:      strings.TrimSpace(r.Name),
		Variety:   strings.TrimSpace(r.Variety),
		CycleDays: r.CycleDays,
	}
}

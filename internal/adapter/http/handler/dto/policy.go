package dto

import (
	"strings"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

// PolicyRequest creates or replaces a policy. Dates accept the formats of models.ParseDate.
type PolicyRequest struct {
	PolicyNumber  string  `json:"policy_number"`
	ClientID      int64   `json:"client_id"`
	CropID        int64   `json:"crop_id"`
	PointID       *int64  `json:"point_id"`
	InsuredAreaHa float64 `json:"insured_area_ha"`
	InsuredAmount float64 `json:"insured_amount"`
	Premium       float64 `json:"premium"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Status        string  `json:"status"`

	start, end models.Date
}

func (r *PolicyRequest) Validate(v *validator.Validator) {
	v.Check(strings.TrimSpace(r.PolicyNumber) != "", "policy_number", "must be provided")
	v.Check(len(r.PolicyNumber) <= 64, "policy_number", "must not be more than 64 characters long")
	v.Check(r.ClientID > 0, "client_id", "must be a positive integer")
	v.Check(r.CropID > 0, "crop_id", "must be a positive integer")
	if r.PointID != nil {
		v.Check(*r.PointID > 0, "point_id", "must be a positive integer")
	}

	v.Check(r.InsuredAreaHa >= 0, "insured_area_ha", "must not be negative")
	v.Check(r.InsuredAmount >= 0, "insured_amount", "must not be negative")
	v.Check(r.Premium >= 0, "premium", "must not be negative")

	r.start = parseDate(v, "start_date", r.StartDate)
	r.end = parseDate(v, "end_date", r.EndDate)
	if !r.start.IsZero() && !r.end.IsZero() {
		v.Check(r.end.After(r.start.Time), "end_date", "must be after start_date")
	}

	if r.Status != "" {
		v.Check(validator.PermittedValue(types.PolicyStatus(strings.ToUpper(r.Status)), types.PolicyStatuses...),
			"status", "must be one of ACTIVE, EXPIRED or CANCELLED")
	}
}

// ToModel must be called after Validate.
func (r *PolicyRequest) ToModel() *models.Policy {
	return &models.Policy{
		PolicyNumber:  strings.TrimSpace(r.PolicyNumber),
		ClientID:      r.ClientID,
		CropID:        r.CropID,
		PointID:       r.PointID,
		InsuredAreaHa: r.InsuredAreaHa,
		InsuredAmount: r.InsuredAmount,
		Premium:       r.Premium,
		StartDate:     r.start,
		EndDate:       r.end,
		Status:        types.PolicyStatus(strings.ToUpper(r.Status)),
	}
}

func parseDate(v *validator.Validator, key, value string) models.Date {
	if strings.TrimSpace(value) == "" {
		v.AddError(key, "must be provided")
		return models.Date{}
	}

	d, err := models.ParseDate(value)
	if err != nil {
		v.AddError(key, "must be a date like 2024-03-05")
		return models.Date{}
	}
	return d
}

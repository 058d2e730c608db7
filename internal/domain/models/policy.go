package models

import (
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
)

// Policy is a crop insurance policy.
type Policy struct {
	ID            int64              `json:"id"`
	PolicyNumber  string             `json:"policy_number"`
	ClientID      int64              `json:"client_id"`
	CropID        int64              `json:"crop_id"`
	PointID       *int64             `json:"point_id,omitempty"`
	InsuredAreaHa float64            `json:"insured_area_ha"`
	InsuredAmount float64            `json:"insured_amount"`
	Premium       float64            `json:"premium"`
	StartDate     Date               `json:"start_date"`
	EndDate       Date               `json:"end_date"`
	Status        types.PolicyStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

// ActiveOn reports whether the policy covers day d.
func (p *Policy) ActiveOn(d Date) bool {
	if p.Status != types.PolicyActive {
		return false
	}
	return !d.Before(p.StartDate.Time) && !d.After(p.EndDate.Time)
}

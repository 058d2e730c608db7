package models

import "time"

// Crop is an insurable crop type.
type Crop struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Variety   string     `json:"variety,omitempty"`
	CycleDays int        `json:"cycle_days,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

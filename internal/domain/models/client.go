package models

import "time"

// Client is an insured farmer or company.
type Client struct {
	ID         int64      `json:"id"`
	FullName   string     `json:"full_name"`
	DocumentID string     `json:"document_id"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Address    string     `json:"address,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

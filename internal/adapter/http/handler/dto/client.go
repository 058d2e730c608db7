package dto

import (
	"net/mail"
	"strings"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/pkg/validator"
)

// ClientRequest is the body of client create and replace requests.
type ClientRequest struct {
	FullName   string `json:"full_name"`
	DocumentID string `json:"document_id"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

func (r *ClientRequest) Validate(v *validator.Validator) {
	v.Check(strings.TrimSpace(r.FullName) != "", "full_name", "must be provided")
	v.Check(len(r.FullName) <= 255, "full_name", "must not be more than 255 characters long")
	v.Check(strings.TrimSpace(r.DocumentID) != "", "document_id", "must be provided")
	v.Check(len(r.DocumentID) <= 64, "document_id", "must not be more than 64 characters long")
	if r.Email != "" {
		_, err := mail.ParseAddress(r.Email)
		v.Check(err == nil, "email", "must be a valid email address")
	}
	v.Check(len(r.Phone) <= 32, "phone", "must not be more than 32 characters long")
	v.Check(len(r.Address) <= 500, "address", "must not be more than 500 characters long")
}

func (r *ClientRequest) ToModel() *models.Client {
	return &models.Client{
		FullName:   strings.TrimSpace(r.FullName),
		DocumentID: strings.TrimSpace(r.DocumentID),
		Email:      strings.TrimSpace(r.Email),
		Phone:      strings.TrimSpace(r.Phone),
		Address:    strings.TrimSpace(r.Address),
	}
}

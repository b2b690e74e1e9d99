package models

import (
	"time"

	"github.com/google/uuid"
)

// Signature represents the single consent row an employee can ever have.
// The unique index on employee_code is the authoritative guard.
type Signature struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	EmployeeCode   string     `json:"employee_code" db:"employee_code"`
	SignedName     string     `json:"signed_name" db:"signed_name"`
	SignedAt       time.Time  `json:"signed_at" db:"signed_at"`
	SignatureImage NullString `json:"signature_image" db:"signature_image"`
}

// SignRequest carries the employee sign form fields. Consent arrives as
// the checkbox value "on" and is validated by the signature service.
type SignRequest struct {
	SignedName    string `form:"signed_name"`
	Consent       string `form:"consent"`
	SignatureData string `form:"signature_data"`
}

// ConsentGiven reports whether the consent checkbox was ticked
func (r *SignRequest) ConsentGiven() bool {
	return r.Consent == "on"
}

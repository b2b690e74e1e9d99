package models

import "time"

// Offer status values. An offer starts as draft and moves to published
// exactly once; there is no transition back.
const (
	OfferStatusDraft     = "draft"
	OfferStatusPublished = "published"
)

// Offer represents a row in the offers table. IDs are ascending numerics
// so the latest published offer for a code is simply the highest id.
type Offer struct {
	ID           int64     `json:"id" db:"id"`
	EmployeeCode string    `json:"employee_code" db:"employee_code"`
	Content      string    `json:"content" db:"content"`
	Status       string    `json:"status" db:"status"`
	PublishedAt  NullTime  `json:"published_at" db:"published_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsPublished reports whether the offer is visible to employees
func (o *Offer) IsPublished() bool {
	return o.Status == OfferStatusPublished
}

// CreateOfferRequest carries the admin draft-offer form fields
type CreateOfferRequest struct {
	EmployeeCode string `form:"employee_code" binding:"required"`
	Content      string `form:"content" binding:"required"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee represents a row in the employees table. EmployeeCode is the
// natural key joining offers and signatures; the uuid id is internal.
type Employee struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	EmployeeCode string     `json:"employee_code" db:"employee_code"`
	FullName     NullString `json:"full_name" db:"full_name"`
	Email        NullString `json:"email" db:"email"`
	CompanyID    NullString `json:"company_id" db:"company_id"`
	Details      NullString `json:"details" db:"details"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

// UpsertEmployeeRequest carries the admin employee form fields. Blank
// optional fields overwrite stored values with null.
type UpsertEmployeeRequest struct {
	EmployeeCode string `form:"employee_code" binding:"required"`
	FullName     string `form:"full_name"`
	Email        string `form:"email"`
	Details      string `form:"details"`
}

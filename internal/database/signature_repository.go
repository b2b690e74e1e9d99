package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/models"
)

// SignatureRepository handles database operations for the signatures table.
// The unique index on employee_code is the authoritative one-signature
// guard; Insert surfaces its violation untranslated so the service layer
// can recognize the losing side of a race.
type SignatureRepository struct {
	db DB
}

// NewSignatureRepository creates a new signature repository
func NewSignatureRepository(db DB) *SignatureRepository {
	return &SignatureRepository{db: db}
}

// GetByCode retrieves the signature for an employee code
func (r *SignatureRepository) GetByCode(ctx context.Context, employeeCode string) (*models.Signature, error) {
	query := `
		SELECT id, employee_code, signed_name, signed_at, signature_image
		FROM signatures
		WHERE employee_code = $1
	`

	var signature models.Signature
	err := r.db.QueryRow(query, employeeCode).Scan(
		&signature.ID, &signature.EmployeeCode, &signature.SignedName,
		&signature.SignedAt, &signature.SignatureImage,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("signature for %q: %w", employeeCode, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get signature: %w", err)
	}

	return &signature, nil
}

// Insert creates the employee's signature row. A unique violation on
// uniq_signature_employee stays detectable through the returned error
// via IsUniqueViolation.
func (r *SignatureRepository) Insert(ctx context.Context, employeeCode, signedName string, signatureImage models.NullString) (*models.Signature, error) {
	query := `
		INSERT INTO signatures (id, employee_code, signed_name, signed_at, signature_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, employee_code, signed_name, signed_at, signature_image
	`

	var signature models.Signature
	err := r.db.QueryRow(query, uuid.New(), employeeCode, signedName, time.Now(), signatureImage).Scan(
		&signature.ID, &signature.EmployeeCode, &signature.SignedName,
		&signature.SignedAt, &signature.SignatureImage,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert signature: %w", err)
	}

	return &signature, nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/models"
)

// SignatureService captures the one-time employee signature. The unique
// index on signatures.employee_code is the real concurrency guard; the
// pre-check here only exists to give the common case a friendly page
// without burning an insert.
type SignatureService struct {
	signatureRepo *database.SignatureRepository
	employeeRepo  *database.EmployeeRepository
}

// NewSignatureService creates a new signature service
func NewSignatureService(
	signatureRepo *database.SignatureRepository,
	employeeRepo *database.EmployeeRepository,
) *SignatureService {
	return &SignatureService{
		signatureRepo: signatureRepo,
		employeeRepo:  employeeRepo,
	}
}

// GetExisting returns the signature for an employee code, or ErrNotFound
func (s *SignatureService) GetExisting(ctx context.Context, employeeCode string) (*models.Signature, error) {
	signature, err := s.signatureRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return signature, nil
}

// Sign records the employee's consent exactly once. A concurrent second
// sign attempt loses at the unique index and comes back as
// ErrAlreadySigned, same as a sequential retry.
func (s *SignatureService) Sign(ctx context.Context, employeeCode, signedName string, consentGiven bool, signatureImage string) (*models.Signature, error) {
	if signedName == "" || !consentGiven || signatureImage == "" {
		return nil, &ValidationError{Message: "Please provide your name, consent, and signature."}
	}

	_, err := s.signatureRepo.GetByCode(ctx, employeeCode)
	if err == nil {
		return nil, ErrAlreadySigned
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	signature, err := s.signatureRepo.Insert(ctx, employeeCode, signedName, models.NewNullString(signatureImage))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrAlreadySigned
		}
		return nil, err
	}

	if err := s.ensureEmployee(ctx, employeeCode, signedName); err != nil {
		return nil, err
	}

	return signature, nil
}

// ensureEmployee makes the "employee exists after first contact" invariant
// explicit: signing may be the first time this code is ever seen.
func (s *SignatureService) ensureEmployee(ctx context.Context, employeeCode, signedName string) error {
	_, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	_, err = s.employeeRepo.Insert(
		ctx,
		employeeCode,
		models.NewNullString(signedName),
		models.NullString{},
		models.NullString{},
	)
	if err != nil {
		return fmt.Errorf("failed to create employee record at signing: %w", err)
	}

	return nil
}

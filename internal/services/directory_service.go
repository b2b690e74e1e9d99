package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/models"
)

// DirectoryService manages employee profile data and company id assignment
type DirectoryService struct {
	employeeRepo *database.EmployeeRepository
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(employeeRepo *database.EmployeeRepository) *DirectoryService {
	return &DirectoryService{employeeRepo: employeeRepo}
}

// Upsert creates or overwrites an employee profile. Overwrite means
// overwrite: blank optional fields null out whatever was stored before.
// The employee code itself is immutable once created.
func (s *DirectoryService) Upsert(ctx context.Context, employeeCode, fullName, email, details string) (*models.Employee, error) {
	if employeeCode == "" {
		return nil, &ValidationError{Message: "Employee code is required."}
	}

	name := models.NewNullString(fullName)
	mail := models.NewNullString(email)
	blob := models.NewNullString(details)

	_, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return s.employeeRepo.Insert(ctx, employeeCode, name, mail, blob)
		}
		return nil, err
	}

	return s.employeeRepo.Update(ctx, employeeCode, name, mail, blob)
}

// GenerateCompanyID assigns a fresh random company id, unconditionally
// overwriting any previous value. A missing employee code is an error,
// not a silent no-op.
func (s *DirectoryService) GenerateCompanyID(ctx context.Context, employeeCode string) (string, error) {
	companyID := uuid.NewString()

	err := s.employeeRepo.SetCompanyID(ctx, employeeCode, companyID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to assign company id: %w", err)
	}

	return companyID, nil
}

// GetByCode retrieves an employee by employee code
func (s *DirectoryService) GetByCode(ctx context.Context, employeeCode string) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return employee, nil
}

// List returns all employees for the admin directory page
func (s *DirectoryService) List(ctx context.Context) ([]models.Employee, error) {
	return s.employeeRepo.List(ctx)
}

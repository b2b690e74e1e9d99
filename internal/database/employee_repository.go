package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/models"
)

const employeeColumns = `id, employee_code, full_name, email, company_id, details, created_at, updated_at`

// EmployeeRepository handles database operations for the employees table
type EmployeeRepository struct {
	db DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func scanEmployee(row *sql.Row) (*models.Employee, error) {
	var employee models.Employee
	err := row.Scan(
		&employee.ID, &employee.EmployeeCode, &employee.FullName, &employee.Email,
		&employee.CompanyID, &employee.Details, &employee.CreatedAt, &employee.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// GetByCode retrieves an employee by employee code
func (r *EmployeeRepository) GetByCode(ctx context.Context, employeeCode string) (*models.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE employee_code = $1
	`

	employee, err := scanEmployee(r.db.QueryRow(query, employeeCode))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee %q: %w", employeeCode, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee, nil
}

// List retrieves all employees, newest first
func (r *EmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		var employee models.Employee
		err := rows.Scan(
			&employee.ID, &employee.EmployeeCode, &employee.FullName, &employee.Email,
			&employee.CompanyID, &employee.Details, &employee.CreatedAt, &employee.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}

	return employees, rows.Err()
}

// Insert creates a new employee row
func (r *EmployeeRepository) Insert(ctx context.Context, employeeCode string, fullName, email, details models.NullString) (*models.Employee, error) {
	query := `
		INSERT INTO employees (id, employee_code, full_name, email, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + employeeColumns + `
	`

	employee, err := scanEmployee(r.db.QueryRow(query, uuid.New(), employeeCode, fullName, email, details, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to insert employee: %w", err)
	}

	return employee, nil
}

// Update overwrites the mutable profile fields of an existing employee.
// Null inputs replace prior values; employee_code itself never changes.
func (r *EmployeeRepository) Update(ctx context.Context, employeeCode string, fullName, email, details models.NullString) (*models.Employee, error) {
	query := `
		UPDATE employees
		SET full_name = $1, email = $2, details = $3, updated_at = NOW()
		WHERE employee_code = $4
		RETURNING ` + employeeColumns + `
	`

	employee, err := scanEmployee(r.db.QueryRow(query, fullName, email, details, employeeCode))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee %q: %w", employeeCode, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee, nil
}

// SetCompanyID unconditionally overwrites the employee's company id
func (r *EmployeeRepository) SetCompanyID(ctx context.Context, employeeCode, companyID string) error {
	query := `
		UPDATE employees
		SET company_id = $1, updated_at = NOW()
		WHERE employee_code = $2
	`

	result, err := r.db.Exec(query, companyID, employeeCode)
	if err != nil {
		return fmt.Errorf("failed to set company id: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("employee %q: %w", employeeCode, ErrNotFound)
	}

	return nil
}

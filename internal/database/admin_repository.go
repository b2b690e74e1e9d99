package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/models"
)

// AdminRepository handles database operations for the admins table
type AdminRepository struct {
	db DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// GetByUsername retrieves an admin by username
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	query := `
		SELECT id, username, password_hash, created_at, last_login_at
		FROM admins
		WHERE username = $1
	`

	var admin models.Admin
	err := r.db.QueryRow(query, username).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash,
		&admin.CreatedAt, &admin.LastLoginAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("admin %q: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return &admin, nil
}

// Create inserts a new admin row
func (r *AdminRepository) Create(ctx context.Context, username, passwordHash string) (*models.Admin, error) {
	query := `
		INSERT INTO admins (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, username, password_hash, created_at, last_login_at
	`

	var admin models.Admin
	err := r.db.QueryRow(query, uuid.New(), username, passwordHash, time.Now()).Scan(
		&admin.ID, &admin.Username, &admin.PasswordHash,
		&admin.CreatedAt, &admin.LastLoginAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return &admin, nil
}

// UpdateLastLogin stamps the admin's last successful login
func (r *AdminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE admins SET last_login_at = NOW() WHERE id = $1`

	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	return nil
}

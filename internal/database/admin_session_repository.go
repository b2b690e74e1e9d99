package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/offerdesk/offer-platform/internal/models"
)

// AdminSessionRepository handles database operations for admin sessions.
// Sessions are server-side rows keyed by an opaque token; the cookie only
// ever carries the token.
type AdminSessionRepository struct {
	db DB
}

// NewAdminSessionRepository creates a new admin session repository
func NewAdminSessionRepository(db DB) *AdminSessionRepository {
	return &AdminSessionRepository{db: db}
}

// Create inserts a new session row
func (r *AdminSessionRepository) Create(ctx context.Context, session *models.AdminSession) error {
	query := `
		INSERT INTO admin_sessions (
			token, admin_id, username, ip_address, device_os, browser,
			created_at, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		session.Token,
		session.AdminID,
		session.Username,
		session.IPAddress,
		session.DeviceOS,
		session.Browser,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetByToken retrieves a session by its opaque token
func (r *AdminSessionRepository) GetByToken(ctx context.Context, token uuid.UUID) (*models.AdminSession, error) {
	query := `
		SELECT token, admin_id, username, ip_address, device_os, browser,
		       created_at, expires_at
		FROM admin_sessions
		WHERE token = $1
	`

	var session models.AdminSession
	err := r.db.QueryRow(query, token).Scan(
		&session.Token, &session.AdminID, &session.Username,
		&session.IPAddress, &session.DeviceOS, &session.Browser,
		&session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// Delete removes a session row, ending the session
func (r *AdminSessionRepository) Delete(ctx context.Context, token uuid.UUID) error {
	query := `DELETE FROM admin_sessions WHERE token = $1`

	if _, err := r.db.Exec(query, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// DeleteExpired removes all sessions past their expiry window
func (r *AdminSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM admin_sessions WHERE expires_at <= NOW()`

	result, err := r.db.Exec(query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}

	return rows, nil
}

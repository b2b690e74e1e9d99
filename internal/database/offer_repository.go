package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/offerdesk/offer-platform/internal/models"
)

const offerColumns = `id, employee_code, content, status, published_at, created_at`

// OfferRepository handles database operations for the offers table
type OfferRepository struct {
	db DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func scanOffer(row *sql.Row) (*models.Offer, error) {
	var offer models.Offer
	err := row.Scan(
		&offer.ID, &offer.EmployeeCode, &offer.Content,
		&offer.Status, &offer.PublishedAt, &offer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// Insert creates a new offer row in draft status
func (r *OfferRepository) Insert(ctx context.Context, employeeCode, content string) (*models.Offer, error) {
	query := `
		INSERT INTO offers (employee_code, content, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + offerColumns + `
	`

	offer, err := scanOffer(r.db.QueryRow(query, employeeCode, content, models.OfferStatusDraft, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("failed to insert offer: %w", err)
	}

	return offer, nil
}

// GetByID retrieves an offer by id regardless of status. Callers exposing
// content to employees must check IsPublished first.
func (r *OfferRepository) GetByID(ctx context.Context, id int64) (*models.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE id = $1
	`

	offer, err := scanOffer(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("offer %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return offer, nil
}

// GetLatestPublishedByCode retrieves the highest-id published offer for an
// employee code. Drafts never match, whatever their id.
func (r *OfferRepository) GetLatestPublishedByCode(ctx context.Context, employeeCode string) (*models.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		WHERE employee_code = $1 AND status = $2
		ORDER BY id DESC
		LIMIT 1
	`

	offer, err := scanOffer(r.db.QueryRow(query, employeeCode, models.OfferStatusPublished))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("published offer for %q: %w", employeeCode, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get published offer: %w", err)
	}

	return offer, nil
}

// Publish marks an offer published and stamps published_at. Republishing
// only refreshes the timestamp; the status write is idempotent.
func (r *OfferRepository) Publish(ctx context.Context, id int64) error {
	query := `
		UPDATE offers
		SET status = $1, published_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.Exec(query, models.OfferStatusPublished, id)
	if err != nil {
		return fmt.Errorf("failed to publish offer: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("offer %d: %w", id, ErrNotFound)
	}

	return nil
}

// List retrieves all offers, newest first
func (r *OfferRepository) List(ctx context.Context) ([]models.Offer, error) {
	query := `
		SELECT ` + offerColumns + `
		FROM offers
		ORDER BY id DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		var offer models.Offer
		err := rows.Scan(
			&offer.ID, &offer.EmployeeCode, &offer.Content,
			&offer.Status, &offer.PublishedAt, &offer.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan offer: %w", err)
		}
		offers = append(offers, offer)
	}

	return offers, rows.Err()
}

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/offerdesk/offer-platform/internal/models"
)

// TermsRepository handles database operations for the singleton terms row
type TermsRepository struct {
	db DB
}

// NewTermsRepository creates a new terms repository
func NewTermsRepository(db DB) *TermsRepository {
	return &TermsRepository{db: db}
}

// Get retrieves the terms content. The row is seeded by migration, so a
// missing row is a store fault, not a business case.
func (r *TermsRepository) Get(ctx context.Context) (*models.Terms, error) {
	query := `SELECT id, content FROM terms WHERE id = $1`

	var terms models.Terms
	err := r.db.QueryRow(query, models.TermsRowID).Scan(&terms.ID, &terms.Content)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("terms row: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get terms: %w", err)
	}

	return &terms, nil
}

// Update overwrites the terms content
func (r *TermsRepository) Update(ctx context.Context, content string) error {
	query := `UPDATE terms SET content = $1 WHERE id = $2`

	if _, err := r.db.Exec(query, content, models.TermsRowID); err != nil {
		return fmt.Errorf("failed to update terms: %w", err)
	}

	return nil
}

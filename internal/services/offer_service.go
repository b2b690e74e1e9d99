package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/models"
)

// OfferService manages the offer lifecycle: draft creation, the one-way
// draft to published transition, and published-only employee lookups.
type OfferService struct {
	offerRepo *database.OfferRepository
}

// NewOfferService creates a new offer service
func NewOfferService(offerRepo *database.OfferRepository) *OfferService {
	return &OfferService{offerRepo: offerRepo}
}

// CreateDraft inserts a new offer in draft status. An employee code may
// accumulate multiple offers over time; employees only ever see the
// latest published one.
func (s *OfferService) CreateDraft(ctx context.Context, employeeCode, content string) (*models.Offer, error) {
	if employeeCode == "" || content == "" {
		return nil, &ValidationError{Message: "Employee code and content are required."}
	}

	return s.offerRepo.Insert(ctx, employeeCode, content)
}

// Publish transitions an offer to published. Republishing an already
// published offer only refreshes published_at. A missing offer id is an
// error here, not a silent no-op.
func (s *OfferService) Publish(ctx context.Context, id int64) error {
	err := s.offerRepo.Publish(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to publish offer %d: %w", id, err)
	}

	return nil
}

// GetPublishedForEmployee returns the most recent published offer for an
// employee code, or ErrNotFound. Drafts never surface here.
func (s *OfferService) GetPublishedForEmployee(ctx context.Context, employeeCode string) (*models.Offer, error) {
	offer, err := s.offerRepo.GetLatestPublishedByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return offer, nil
}

// GetPublished returns an offer by id only when it is published. Draft
// and missing offers are identical ErrNotFound to the caller so draft
// existence never leaks.
func (s *OfferService) GetPublished(ctx context.Context, id int64) (*models.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !offer.IsPublished() {
		return nil, ErrNotFound
	}

	return offer, nil
}

// List returns all offers, newest first, for the admin dashboard
func (s *OfferService) List(ctx context.Context) ([]models.Offer, error) {
	return s.offerRepo.List(ctx)
}

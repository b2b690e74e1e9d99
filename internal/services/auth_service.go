package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/user_agent"
	"github.com/offerdesk/offer-platform/internal/database"
	"github.com/offerdesk/offer-platform/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin authentication and session management
type AuthService struct {
	adminRepo         *database.AdminRepository
	sessionRepo       *database.AdminSessionRepository
	bootstrapUsername string
	bootstrapPassword string
	bcryptCost        int
	sessionTTL        time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo *database.AdminRepository,
	sessionRepo *database.AdminSessionRepository,
	bootstrapUsername string,
	bootstrapPassword string,
	bcryptCost int,
	sessionTTL time.Duration,
) *AuthService {
	return &AuthService{
		adminRepo:         adminRepo,
		sessionRepo:       sessionRepo,
		bootstrapUsername: bootstrapUsername,
		bootstrapPassword: bootstrapPassword,
		bcryptCost:        bcryptCost,
		sessionTTL:        sessionTTL,
	}
}

// EnsureDefaultAdmin creates the bootstrap admin account if it is missing
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.adminRepo.GetByUsername(ctx, s.bootstrapUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("failed to check default admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.bootstrapPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	if _, err := s.adminRepo.Create(ctx, s.bootstrapUsername, string(hash)); err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	return nil
}

// Login verifies credentials and opens a server-side session. The returned
// session's token is the only thing the cookie carries.
func (s *AuthService) Login(ctx context.Context, username, password, ipAddress, userAgent string) (*models.AdminSession, error) {
	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &models.AdminSession{
		Token:     uuid.New(),
		AdminID:   admin.ID,
		Username:  admin.Username,
		IPAddress: models.NewNullString(ipAddress),
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if userAgent != "" {
		ua := user_agent.New(userAgent)
		browser, version := ua.Browser()
		session.DeviceOS = models.NewNullString(ua.OS())
		session.Browser = models.NewNullString(fmt.Sprintf("%s %s", browser, version))
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Non-fatal: the login already succeeded
	_ = s.adminRepo.UpdateLastLogin(ctx, admin.ID)

	return session, nil
}

// ValidateSession resolves a cookie token into an active session. Expired
// sessions are deleted lazily and reported as not found.
func (s *AuthService) ValidateSession(ctx context.Context, token uuid.UUID) (*models.AdminSession, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		_ = s.sessionRepo.Delete(ctx, token)
		return nil, ErrNotFound
	}

	return session, nil
}

// Logout ends the session identified by token
func (s *AuthService) Logout(ctx context.Context, token uuid.UUID) error {
	return s.sessionRepo.Delete(ctx, token)
}

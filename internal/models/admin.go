package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin represents a row in the admins table
type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LastLoginAt  NullTime  `json:"last_login_at" db:"last_login_at"`
}

// AdminSession represents a server-side admin session row keyed by an
// opaque token. The token travels in a cookie; everything else stays here.
type AdminSession struct {
	Token     uuid.UUID  `json:"token" db:"token"`
	AdminID   uuid.UUID  `json:"admin_id" db:"admin_id"`
	Username  string     `json:"username" db:"username"`
	IPAddress NullString `json:"ip_address" db:"ip_address"`
	DeviceOS  NullString `json:"device_os" db:"device_os"`
	Browser   NullString `json:"browser" db:"browser"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
}

// Expired reports whether the session is past its expiry window
func (s *AdminSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

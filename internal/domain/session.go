package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionRevoked = errors.New("session already revoked")
	ErrConsentRevoked = errors.New("consent already revoked")
)

// Session is one refresh-token login. Token is the opaque refresh token the
// client presents; a revoked or expired session never mints new access tokens.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null;column:token" json:"-"`
	UserAgent string    `gorm:"column:user_agent" json:"user_agent,omitempty"`

	ExpiresAt time.Time  `gorm:"not null;column:expires_at;index" json:"expires_at"`
	RevokedAt *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Session) TableName() string { return "session" }

// Revoke invalidates the session. Revoking an already-revoked session is an
// invalid-state transition.
func (s *Session) Revoke(at time.Time) error {
	if s.RevokedAt != nil {
		return ErrSessionRevoked
	}
	s.RevokedAt = &at
	return nil
}

// IsActive reports whether the session can still be used at the given instant.
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

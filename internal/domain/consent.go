package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserConsent records one consent decision per user and consent type. A
// revoked consent keeps its row for audit purposes: RevokedAt set, IsGranted
// false.
type UserConsent struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_user_consent_type,unique" json:"user_id"`
	ConsentType string    `gorm:"not null;column:consent_type;index:idx_user_consent_type,unique" json:"consent_type"`

	IsGranted bool           `gorm:"not null;column:is_granted" json:"is_granted"`
	GrantedAt time.Time      `gorm:"not null;column:granted_at" json:"granted_at"`
	RevokedAt *time.Time     `gorm:"column:revoked_at" json:"revoked_at,omitempty"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserConsent) TableName() string { return "user_consent" }

// Revoke withdraws a granted consent. Revoking twice is an invalid-state
// transition.
func (c *UserConsent) Revoke(at time.Time) error {
	if !c.IsGranted || c.RevokedAt != nil {
		return ErrConsentRevoked
	}
	c.IsGranted = false
	c.RevokedAt = &at
	return nil
}

// Grant records a fresh grant, clearing any previous revocation.
func (c *UserConsent) Grant(at time.Time) {
	c.IsGranted = true
	c.GrantedAt = at
	c.RevokedAt = nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	LastName  string    `gorm:"column:last_name" json:"last_name"`

	EmailVerifiedAt *time.Time `gorm:"column:email_verified_at" json:"email_verified_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

// VerifyEmail marks the address confirmed. Verifying twice keeps the original
// timestamp.
func (u *User) VerifyEmail(at time.Time) {
	if u.EmailVerifiedAt != nil {
		return
	}
	u.EmailVerifiedAt = &at
}

func (u *User) IsEmailVerified() bool { return u.EmailVerifiedAt != nil }

// IsComplete reports whether the profile carries enough data to be shown to
// other players.
func (u *User) IsComplete() bool {
	return u.FirstName != "" && u.LastName != ""
}

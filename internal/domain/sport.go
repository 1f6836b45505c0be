package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Sport struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description string    `gorm:"column:description" json:"description"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Sport) TableName() string { return "sport" }

// Level is a proficiency tier (Beginner, Intermediate, ...). Rank orders tiers
// ascending from least experienced.
type Level struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Rank int       `gorm:"not null;column:rank" json:"rank"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Level) TableName() string { return "level" }

// UserSport links a user to a sport they play at a given level. One row per
// user and sport.
type UserSport struct {
	ID      uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_user_sport,unique" json:"user_id"`
	SportID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_sport,unique;index" json:"sport_id"`
	LevelID uuid.UUID `gorm:"type:uuid;not null" json:"level_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserSport) TableName() string { return "user_sport" }

// ChangeLevel moves the link to a different proficiency tier.
func (us *UserSport) ChangeLevel(levelID uuid.UUID) {
	us.LevelID = levelID
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
)

// External representations returned to transports. Derived fields
// (IsEmailVerified, IsComplete) are computed at mapping time so clients never
// re-derive them from raw entity state.

type UserDTO struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	IsEmailVerified bool      `json:"is_email_verified"`
	IsComplete      bool      `json:"is_complete"`
	CreatedAt       time.Time `json:"created_at"`
}

type SessionDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserAgent string    `json:"user_agent,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type ConsentDTO struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	ConsentType string     `json:"consent_type"`
	IsGranted   bool       `json:"is_granted"`
	GrantedAt   time.Time  `json:"granted_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
}

type SportDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

type LevelDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Rank int       `json:"rank"`
}

type UserSportDTO struct {
	ID      uuid.UUID `json:"id"`
	UserID  uuid.UUID `json:"user_id"`
	SportID uuid.UUID `json:"sport_id"`
	LevelID uuid.UUID `json:"level_id"`
}

// TokenPairDTO is what login and refresh hand back to the transport.
type TokenPairDTO struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       uuid.UUID `json:"user_id"`
}

func MapUser(u *domain.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		IsEmailVerified: u.IsEmailVerified(),
		IsComplete:      u.IsComplete(),
		CreatedAt:       u.CreatedAt,
	}
}

func MapUsers(users []*domain.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = MapUser(u)
	}
	return out
}

func MapSession(s *domain.Session, now time.Time) SessionDTO {
	return SessionDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		ExpiresAt: s.ExpiresAt,
		IsActive:  s.IsActive(now),
		CreatedAt: s.CreatedAt,
	}
}

func MapConsent(c *domain.UserConsent) ConsentDTO {
	return ConsentDTO{
		ID:          c.ID,
		UserID:      c.UserID,
		ConsentType: c.ConsentType,
		IsGranted:   c.IsGranted,
		GrantedAt:   c.GrantedAt,
		RevokedAt:   c.RevokedAt,
	}
}

func MapConsents(consents []*domain.UserConsent) []ConsentDTO {
	out := make([]ConsentDTO, len(consents))
	for i, c := range consents {
		out[i] = MapConsent(c)
	}
	return out
}

func MapSport(s *domain.Sport) SportDTO {
	return SportDTO{ID: s.ID, Name: s.Name, Description: s.Description}
}

func MapSports(sports []*domain.Sport) []SportDTO {
	out := make([]SportDTO, len(sports))
	for i, s := range sports {
		out[i] = MapSport(s)
	}
	return out
}

func MapLevel(l *domain.Level) LevelDTO {
	return LevelDTO{ID: l.ID, Name: l.Name, Rank: l.Rank}
}

func MapLevels(levels []*domain.Level) []LevelDTO {
	out := make([]LevelDTO, len(levels))
	for i, l := range levels {
		out[i] = MapLevel(l)
	}
	return out
}

func MapUserSport(us *domain.UserSport) UserSportDTO {
	return UserSportDTO{ID: us.ID, UserID: us.UserID, SportID: us.SportID, LevelID: us.LevelID}
}

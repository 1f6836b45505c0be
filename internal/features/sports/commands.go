package sports

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/validation"
)

type CreateSportCommand struct {
	Name        string
	Description string
}

type AddUserSportCommand struct {
	UserID  uuid.UUID
	SportID uuid.UUID
	LevelID uuid.UUID
}

type ListSportsQuery struct {
	Offset int
	Limit  int
}

type GetPopularSportsQuery struct {
	Count int
}

type ListLevelsQuery struct{}

type CreateSportValidator struct{}

func (CreateSportValidator) Validate(cmd CreateSportCommand) []validation.Violation {
	if strings.TrimSpace(cmd.Name) == "" {
		return []validation.Violation{{Field: "name", Message: "name is required"}}
	}
	return nil
}

type AddUserSportValidator struct{}

func (AddUserSportValidator) Validate(cmd AddUserSportCommand) []validation.Violation {
	var out []validation.Violation
	if cmd.UserID == uuid.Nil {
		out = append(out, validation.Violation{Field: "user_id", Message: "user_id is required"})
	}
	if cmd.SportID == uuid.Nil {
		out = append(out, validation.Violation{Field: "sport_id", Message: "sport_id is required"})
	}
	if cmd.LevelID == uuid.Nil {
		out = append(out, validation.Violation{Field: "level_id", Message: "level_id is required"})
	}
	return out
}

type ListSportsValidator struct{}

func (ListSportsValidator) Validate(q ListSportsQuery) []validation.Violation {
	var out []validation.Violation
	if q.Offset < 0 {
		out = append(out, validation.Violation{Field: "offset", Message: "offset must not be negative"})
	}
	if q.Limit < 0 {
		out = append(out, validation.Violation{Field: "limit", Message: "limit must not be negative"})
	}
	return out
}

type GetPopularSportsValidator struct{}

func (GetPopularSportsValidator) Validate(q GetPopularSportsQuery) []validation.Violation {
	if q.Count < 0 {
		return []validation.Violation{{Field: "count", Message: "count must not be negative"}}
	}
	return nil
}

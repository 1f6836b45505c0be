package consents

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/validation"
)

type GrantConsentCommand struct {
	UserID      uuid.UUID
	ConsentType string
	Metadata    map[string]any
}

type RevokeConsentCommand struct {
	UserID      uuid.UUID
	ConsentType string
	PerformedBy uuid.UUID
}

type ListUserConsentsQuery struct {
	UserID uuid.UUID
}

type GrantConsentValidator struct{}

func (GrantConsentValidator) Validate(cmd GrantConsentCommand) []validation.Violation {
	var out []validation.Violation
	if cmd.UserID == uuid.Nil {
		out = append(out, validation.Violation{Field: "user_id", Message: "user_id is required"})
	}
	if strings.TrimSpace(cmd.ConsentType) == "" {
		out = append(out, validation.Violation{Field: "consent_type", Message: "consent_type is required"})
	}
	return out
}

type RevokeConsentValidator struct{}

func (RevokeConsentValidator) Validate(cmd RevokeConsentCommand) []validation.Violation {
	var out []validation.Violation
	if cmd.UserID == uuid.Nil {
		out = append(out, validation.Violation{Field: "user_id", Message: "user_id is required"})
	}
	if strings.TrimSpace(cmd.ConsentType) == "" {
		out = append(out, validation.Violation{Field: "consent_type", Message: "consent_type is required"})
	}
	return out
}

type ListUserConsentsValidator struct{}

func (ListUserConsentsValidator) Validate(q ListUserConsentsQuery) []validation.Violation {
	if q.UserID == uuid.Nil {
		return []validation.Violation{{Field: "user_id", Message: "user_id is required"}}
	}
	return nil
}

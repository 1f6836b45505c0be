package auth

import (
	"strings"

	"github.com/matchpointhq/matchpoint-backend/internal/validation"
)

type RegisterUserCommand struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type LoginCommand struct {
	Email     string
	Password  string
	UserAgent string
}

type RefreshTokenCommand struct {
	Token string
}

type LogoutCommand struct {
	Token string
}

type RevokeTokenCommand struct {
	Token string
}

const minPasswordLength = 8

// RegisterUserValidator checks field presence and the password policy.
type RegisterUserValidator struct{}

func (RegisterUserValidator) Validate(cmd RegisterUserCommand) []validation.Violation {
	var out []validation.Violation
	email := strings.TrimSpace(cmd.Email)
	if email == "" {
		out = append(out, validation.Violation{Field: "email", Message: "email is required"})
	} else if !strings.Contains(email, "@") {
		out = append(out, validation.Violation{Field: "email", Message: "email is not valid"})
	}
	if cmd.Password == "" {
		out = append(out, validation.Violation{Field: "password", Message: "password is required"})
	} else if len(cmd.Password) < minPasswordLength {
		out = append(out, validation.Violation{Field: "password", Message: "password must be at least 8 characters"})
	}
	return out
}

type LoginValidator struct{}

func (LoginValidator) Validate(cmd LoginCommand) []validation.Violation {
	var out []validation.Violation
	if strings.TrimSpace(cmd.Email) == "" {
		out = append(out, validation.Violation{Field: "email", Message: "email is required"})
	}
	if cmd.Password == "" {
		out = append(out, validation.Violation{Field: "password", Message: "password is required"})
	}
	return out
}

type RefreshTokenValidator struct{}

func (RefreshTokenValidator) Validate(cmd RefreshTokenCommand) []validation.Violation {
	if strings.TrimSpace(cmd.Token) == "" {
		return []validation.Violation{{Field: "token", Message: "token is required"}}
	}
	return nil
}

type LogoutValidator struct{}

func (LogoutValidator) Validate(cmd LogoutCommand) []validation.Violation {
	if strings.TrimSpace(cmd.Token) == "" {
		return []validation.Violation{{Field: "token", Message: "token is required"}}
	}
	return nil
}

type RevokeTokenValidator struct{}

func (RevokeTokenValidator) Validate(cmd RevokeTokenCommand) []validation.Violation {
	if strings.TrimSpace(cmd.Token) == "" {
		return []validation.Violation{{Field: "token", Message: "token is required"}}
	}
	return nil
}

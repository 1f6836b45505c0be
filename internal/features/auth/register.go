package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type RegisterUserHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewRegisterUserHandler(uowf uow.Factory, baseLog *logger.Logger) *RegisterUserHandler {
	return &RegisterUserHandler{uowf: uowf, log: baseLog.With("handler", "RegisterUser")}
}

func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (result.Result[dto.UserDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	existing, err := u.Users().GetByEmail(ctx, email)
	if err != nil {
		return result.Result[dto.UserDTO]{}, err
	}
	if existing != nil {
		return result.Failure[dto.UserDTO]("User already exists"), nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return result.Result[dto.UserDTO]{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashed),
		FirstName: strings.TrimSpace(cmd.FirstName),
		LastName:  strings.TrimSpace(cmd.LastName),
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.Users().Add(user)
	if _, err := u.SaveChanges(ctx); err != nil {
		return result.Result[dto.UserDTO]{}, err
	}

	h.log.Info("user registered", "user_id", user.ID.String())
	return result.SuccessWithMessage(dto.MapUser(user), "User registered successfully"), nil
}

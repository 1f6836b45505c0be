package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
	"github.com/matchpointhq/matchpoint-backend/internal/tokens"
)

type LoginHandler struct {
	uowf       uow.Factory
	minter     *tokens.Minter
	refreshTTL time.Duration
	log        *logger.Logger
}

func NewLoginHandler(uowf uow.Factory, minter *tokens.Minter, refreshTTL time.Duration, baseLog *logger.Logger) *LoginHandler {
	return &LoginHandler{
		uowf:       uowf,
		minter:     minter,
		refreshTTL: refreshTTL,
		log:        baseLog.With("handler", "Login"),
	}
}

func (h *LoginHandler) Handle(ctx context.Context, cmd LoginCommand) (result.Result[dto.TokenPairDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	user, err := u.Users().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		return result.Result[dto.TokenPairDTO]{}, err
	}
	if user == nil {
		return result.Failure[dto.TokenPairDTO]("Invalid credentials"), nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(cmd.Password)) != nil {
		return result.Failure[dto.TokenPairDTO]("Invalid credentials"), nil
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		UserAgent: cmd.UserAgent,
		ExpiresAt: now.Add(h.refreshTTL),
		CreatedAt: now,
	}
	access, err := h.minter.Mint(user.ID, session.ID, now)
	if err != nil {
		return result.Result[dto.TokenPairDTO]{}, err
	}

	u.Sessions().Add(session)
	if _, err := u.SaveChanges(ctx); err != nil {
		return result.Result[dto.TokenPairDTO]{}, err
	}

	h.log.Info("user logged in", "user_id", user.ID.String())
	pair := dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: session.Token,
		ExpiresAt:    session.ExpiresAt,
		UserID:       user.ID,
	}
	return result.SuccessWithMessage(pair, "Logged in successfully"), nil
}

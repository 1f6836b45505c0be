package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
	"github.com/matchpointhq/matchpoint-backend/internal/tokens"
)

type RefreshTokenHandler struct {
	uowf       uow.Factory
	minter     *tokens.Minter
	refreshTTL time.Duration
	log        *logger.Logger
}

func NewRefreshTokenHandler(uowf uow.Factory, minter *tokens.Minter, refreshTTL time.Duration, baseLog *logger.Logger) *RefreshTokenHandler {
	return &RefreshTokenHandler{
		uowf:       uowf,
		minter:     minter,
		refreshTTL: refreshTTL,
		log:        baseLog.With("handler", "RefreshToken"),
	}
}

// Handle rotates a refresh session: the presented token is revoked and a new
// session takes its place. Revocation and replacement commit together, so a
// crash mid-rotation never leaves the user with no valid session but a burned
// token.
func (h *RefreshTokenHandler) Handle(ctx context.Context, cmd RefreshTokenCommand) (result.Result[dto.TokenPairDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	session, err := u.Sessions().GetByToken(ctx, cmd.Token)
	if err != nil {
		return result.Result[dto.TokenPairDTO]{}, err
	}
	now := time.Now().UTC()
	if session == nil || !session.IsActive(now) {
		return result.Failure[dto.TokenPairDTO]("Invalid refresh token"), nil
	}

	if err := u.Begin(ctx); err != nil {
		return result.Result[dto.TokenPairDTO]{}, err
	}

	if err := session.Revoke(now); err != nil {
		_ = u.Rollback(ctx)
		return result.Failure[dto.TokenPairDTO]("Invalid refresh token"), nil
	}
	u.Sessions().Update(session)

	next := &domain.Session{
		ID:        uuid.New(),
		UserID:    session.UserID,
		Token:     uuid.New().String(),
		UserAgent: session.UserAgent,
		ExpiresAt: now.Add(h.refreshTTL),
		CreatedAt: now,
	}
	u.Sessions().Add(next)

	if _, err := u.SaveChanges(ctx); err != nil {
		_ = u.Rollback(ctx)
		return result.Result[dto.TokenPairDTO]{}, err
	}
	if err := u.Commit(ctx); err != nil {
		return result.Result[dto.TokenPairDTO]{}, err
	}

	access, err := h.minter.Mint(next.UserID, next.ID, now)
	if err != nil {
		return result.Result[dto.TokenPairDTO]{}, err
	}

	h.log.Info("session rotated", "user_id", next.UserID.String(), "session_id", next.ID.String())
	pair := dto.TokenPairDTO{
		AccessToken:  access,
		RefreshToken: next.Token,
		ExpiresAt:    next.ExpiresAt,
		UserID:       next.UserID,
	}
	return result.SuccessWithMessage(pair, "Token refreshed successfully"), nil
}

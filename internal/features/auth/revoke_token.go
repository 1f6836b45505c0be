package auth

import (
	"context"
	"time"

	"github.com/matchpointhq/matchpoint-backend/internal/clients/redis"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type RevokeTokenHandler struct {
	uowf      uow.Factory
	deny      redis.TokenDenylist
	accessTTL time.Duration
	log       *logger.Logger
}

// NewRevokeTokenHandler accepts a nil denylist; see NewLogoutHandler.
func NewRevokeTokenHandler(uowf uow.Factory, deny redis.TokenDenylist, accessTTL time.Duration, baseLog *logger.Logger) *RevokeTokenHandler {
	return &RevokeTokenHandler{uowf: uowf, deny: deny, accessTTL: accessTTL, log: baseLog.With("handler", "RevokeToken")}
}

// Handle revokes the refresh session behind the presented token. Unknown and
// already-inactive tokens get the same uniform failure so callers cannot probe
// which tokens exist.
func (h *RevokeTokenHandler) Handle(ctx context.Context, cmd RevokeTokenCommand) (result.Result[dto.SessionDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	session, err := u.Sessions().GetByToken(ctx, cmd.Token)
	if err != nil {
		return result.Result[dto.SessionDTO]{}, err
	}
	now := time.Now().UTC()
	if session == nil || !session.IsActive(now) {
		return result.Failure[dto.SessionDTO]("Invalid refresh token"), nil
	}

	if err := session.Revoke(now); err != nil {
		return result.Failure[dto.SessionDTO]("Invalid refresh token"), nil
	}
	u.Sessions().Update(session)
	if _, err := u.SaveChanges(ctx); err != nil {
		return result.Result[dto.SessionDTO]{}, err
	}

	if h.deny != nil {
		if err := h.deny.Deny(ctx, session.ID, h.accessTTL); err != nil {
			h.log.Warn("denylist update failed", "session_id", session.ID.String(), "error", err)
		}
	}

	h.log.Info("session revoked", "session_id", session.ID.String())
	return result.SuccessWithMessage(dto.MapSession(session, now), "Token revoked successfully"), nil
}

package auth

import (
	"context"
	"time"

	"github.com/matchpointhq/matchpoint-backend/internal/clients/redis"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type LogoutHandler struct {
	uowf      uow.Factory
	deny      redis.TokenDenylist
	accessTTL time.Duration
	log       *logger.Logger
}

// NewLogoutHandler accepts a nil denylist; access tokens then run out on
// their own expiry instead of being cut off immediately.
func NewLogoutHandler(uowf uow.Factory, deny redis.TokenDenylist, accessTTL time.Duration, baseLog *logger.Logger) *LogoutHandler {
	return &LogoutHandler{uowf: uowf, deny: deny, accessTTL: accessTTL, log: baseLog.With("handler", "Logout")}
}

// Handle removes the session identified by the presented refresh token. The
// value is the removed session's id.
func (h *LogoutHandler) Handle(ctx context.Context, cmd LogoutCommand) (result.Result[string], error) {
	u := h.uowf.New()
	defer u.Close()

	session, err := u.Sessions().GetByToken(ctx, cmd.Token)
	if err != nil {
		return result.Result[string]{}, err
	}
	if session == nil {
		return result.Failure[string]("Session not found"), nil
	}

	u.Sessions().Remove(session)
	if _, err := u.SaveChanges(ctx); err != nil {
		return result.Result[string]{}, err
	}

	if h.deny != nil {
		if err := h.deny.Deny(ctx, session.ID, h.accessTTL); err != nil {
			h.log.Warn("denylist update failed", "session_id", session.ID.String(), "error", err)
		}
	}

	h.log.Info("session removed", "session_id", session.ID.String())
	return result.SuccessWithMessage(session.ID.String(), "Logged out successfully"), nil
}

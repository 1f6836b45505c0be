package consents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type RevokeConsentHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewRevokeConsentHandler(uowf uow.Factory, baseLog *logger.Logger) *RevokeConsentHandler {
	return &RevokeConsentHandler{uowf: uowf, log: baseLog.With("handler", "RevokeConsent")}
}

// Handle withdraws a granted consent and records the withdrawal in the audit
// trail. The consent update and the audit entry commit in one transaction:
// either both land or neither does.
func (h *RevokeConsentHandler) Handle(ctx context.Context, cmd RevokeConsentCommand) (result.Result[dto.ConsentDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	user, err := u.Users().GetByID(ctx, cmd.UserID)
	if err != nil {
		return result.Result[dto.ConsentDTO]{}, err
	}
	if user == nil {
		return result.Failure[dto.ConsentDTO]("User not found"), nil
	}

	consentType := strings.TrimSpace(cmd.ConsentType)
	consent, err := u.Consents().GetByUserAndType(ctx, user.ID, consentType)
	if err != nil {
		return result.Result[dto.ConsentDTO]{}, err
	}
	if consent == nil {
		return result.Failure[dto.ConsentDTO]("Consent not found"), nil
	}

	now := time.Now().UTC()
	if err := consent.Revoke(now); err != nil {
		if errors.Is(err, domain.ErrConsentRevoked) {
			return result.Failure[dto.ConsentDTO]("Consent already revoked"), nil
		}
		return result.Result[dto.ConsentDTO]{}, err
	}
	consent.UpdatedAt = now

	entry, err := domain.NewAuditLog(domain.UserConsent{}.TableName(), consent.ID, "revoke", cmd.PerformedBy, map[string]any{
		"consent_type": consentType,
	})
	if err != nil {
		return result.Result[dto.ConsentDTO]{}, err
	}

	if err := u.Begin(ctx); err != nil {
		return result.Result[dto.ConsentDTO]{}, err
	}
	u.Consents().Update(consent)
	u.AuditLogs().Add(entry)
	if _, err := u.SaveChanges(ctx); err != nil {
		_ = u.Rollback(ctx)
		return result.Result[dto.ConsentDTO]{}, err
	}
	if err := u.Commit(ctx); err != nil {
		return result.Result[dto.ConsentDTO]{}, err
	}

	h.log.Info("consent revoked", "user_id", user.ID.String(), "consent_type", consentType)
	return result.SuccessWithMessage(dto.MapConsent(consent), "Consent revoked successfully"), nil
}

package consents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type GrantConsentHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewGrantConsentHandler(uowf uow.Factory, baseLog *logger.Logger) *GrantConsentHandler {
	return &GrantConsentHandler{uowf: uowf, log: baseLog.With("handler", "GrantConsent")}
}

// Handle grants a consent for the user. Re-granting a revoked consent reuses
// the existing row so the (user, type) pair stays unique.
func (h *GrantConsentHandler) Handle(ctx context.Context, cmd GrantConsentCommand) (result.Result[dto.ConsentDTO], error) {
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
	now := time.Now().UTC()

	var metadata datatypes.JSON
	if len(cmd.Metadata) > 0 {
		raw, err := json.Marshal(cmd.Metadata)
		if err != nil {
			return result.Result[dto.ConsentDTO]{}, fmt.Errorf("marshal consent metadata: %w", err)
		}
		metadata = datatypes.JSON(raw)
	}

	consent, err := u.Consents().GetByUserAndType(ctx, user.ID, consentType)
	if err != nil {
		return result.Result[dto.ConsentDTO]{}, err
	}
	if consent != nil {
		consent.Grant(now)
		if metadata != nil {
			consent.Metadata = metadata
		}
		consent.UpdatedAt = now
		u.Consents().Update(consent)
	} else {
		consent = &domain.UserConsent{
			ID:          uuid.New(),
			UserID:      user.ID,
			ConsentType: consentType,
			IsGranted:   true,
			GrantedAt:   now,
			Metadata:    metadata,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		u.Consents().Add(consent)
	}

	if _, err := u.SaveChanges(ctx); err != nil {
		return result.Result[dto.ConsentDTO]{}, err
	}

	h.log.Info("consent granted", "user_id", user.ID.String(), "consent_type", consentType)
	return result.SuccessWithMessage(dto.MapConsent(consent), "Consent granted successfully"), nil
}

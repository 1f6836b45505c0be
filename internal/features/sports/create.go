package sports

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type CreateSportHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewCreateSportHandler(uowf uow.Factory, baseLog *logger.Logger) *CreateSportHandler {
	return &CreateSportHandler{uowf: uowf, log: baseLog.With("handler", "CreateSport")}
}

func (h *CreateSportHandler) Handle(ctx context.Context, cmd CreateSportCommand) (result.Result[dto.SportDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	name := strings.TrimSpace(cmd.Name)
	existing, err := u.Sports().GetByName(ctx, name)
	if err != nil {
		return result.Result[dto.SportDTO]{}, err
	}
	if existing != nil {
		return result.Failure[dto.SportDTO]("Sport already exists"), nil
	}

	now := time.Now().UTC()
	sport := &domain.Sport{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(cmd.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	u.Sports().Add(sport)
	if _, err := u.SaveChanges(ctx); err != nil {
		return result.Result[dto.SportDTO]{}, err
	}

	h.log.Info("sport created", "sport_id", sport.ID.String(), "name", sport.Name)
	return result.SuccessWithMessage(dto.MapSport(sport), "Sport created successfully"), nil
}

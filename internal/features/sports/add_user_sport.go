package sports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type AddUserSportHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewAddUserSportHandler(uowf uow.Factory, baseLog *logger.Logger) *AddUserSportHandler {
	return &AddUserSportHandler{uowf: uowf, log: baseLog.With("handler", "AddUserSport")}
}

// Handle links a user to a sport at a proficiency level. Adding a sport the
// user already plays moves the existing link to the new level instead of
// violating the one-row-per-user-and-sport rule.
func (h *AddUserSportHandler) Handle(ctx context.Context, cmd AddUserSportCommand) (result.Result[dto.UserSportDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	user, err := u.Users().GetByID(ctx, cmd.UserID)
	if err != nil {
		return result.Result[dto.UserSportDTO]{}, err
	}
	if user == nil {
		return result.Failure[dto.UserSportDTO]("User not found"), nil
	}

	sport, err := u.Sports().GetByID(ctx, cmd.SportID)
	if err != nil {
		return result.Result[dto.UserSportDTO]{}, err
	}
	if sport == nil {
		return result.Failure[dto.UserSportDTO]("Sport not found"), nil
	}

	level, err := u.Levels().GetByID(ctx, cmd.LevelID)
	if err != nil {
		return result.Result[dto.UserSportDTO]{}, err
	}
	if level == nil {
		return result.Failure[dto.UserSportDTO]("Level not found"), nil
	}

	now := time.Now().UTC()
	link, err := u.UserSports().GetByUserAndSport(ctx, user.ID, sport.ID)
	if err != nil {
		return result.Result[dto.UserSportDTO]{}, err
	}
	if link != nil {
		link.ChangeLevel(level.ID)
		link.UpdatedAt = now
		u.UserSports().Update(link)
	} else {
		link = &domain.UserSport{
			ID:        uuid.New(),
			UserID:    user.ID,
			SportID:   sport.ID,
			LevelID:   level.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		u.UserSports().Add(link)
	}

	if _, err := u.SaveChanges(ctx); err != nil {
		return result.Result[dto.UserSportDTO]{}, err
	}

	h.log.Info("user sport linked", "user_id", user.ID.String(), "sport_id", sport.ID.String())
	return result.SuccessWithMessage(dto.MapUserSport(link), "Sport added successfully"), nil
}

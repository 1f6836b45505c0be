package consents

import (
	"context"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type ListUserConsentsHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewListUserConsentsHandler(uowf uow.Factory, baseLog *logger.Logger) *ListUserConsentsHandler {
	return &ListUserConsentsHandler{uowf: uowf, log: baseLog.With("handler", "ListUserConsents")}
}

func (h *ListUserConsentsHandler) Handle(ctx context.Context, q ListUserConsentsQuery) (result.Result[[]dto.ConsentDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	user, err := u.Users().GetByID(ctx, q.UserID)
	if err != nil {
		return result.Result[[]dto.ConsentDTO]{}, err
	}
	if user == nil {
		return result.Failure[[]dto.ConsentDTO]("User not found"), nil
	}

	rows, err := u.Consents().ListByUser(ctx, user.ID)
	if err != nil {
		return result.Result[[]dto.ConsentDTO]{}, err
	}
	return result.Success(dto.MapConsents(rows)), nil
}

package sports

import (
	"context"

	"github.com/matchpointhq/matchpoint-backend/internal/data/repos"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type ListSportsHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewListSportsHandler(uowf uow.Factory, baseLog *logger.Logger) *ListSportsHandler {
	return &ListSportsHandler{uowf: uowf, log: baseLog.With("handler", "ListSports")}
}

func (h *ListSportsHandler) Handle(ctx context.Context, q ListSportsQuery) (result.Result[[]dto.SportDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	rows, err := u.Sports().List(ctx, repos.Page{Offset: q.Offset, Limit: q.Limit})
	if err != nil {
		return result.Result[[]dto.SportDTO]{}, err
	}
	return result.Success(dto.MapSports(rows)), nil
}

const defaultPopularCount = 5

type GetPopularSportsHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewGetPopularSportsHandler(uowf uow.Factory, baseLog *logger.Logger) *GetPopularSportsHandler {
	return &GetPopularSportsHandler{uowf: uowf, log: baseLog.With("handler", "GetPopularSports")}
}

// Handle ranks sports by how many users play them, most popular first.
func (h *GetPopularSportsHandler) Handle(ctx context.Context, q GetPopularSportsQuery) (result.Result[[]dto.SportDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	count := q.Count
	if count <= 0 {
		count = defaultPopularCount
	}
	rows, err := u.Sports().ListPopular(ctx, count)
	if err != nil {
		return result.Result[[]dto.SportDTO]{}, err
	}
	return result.Success(dto.MapSports(rows)), nil
}

type ListLevelsHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewListLevelsHandler(uowf uow.Factory, baseLog *logger.Logger) *ListLevelsHandler {
	return &ListLevelsHandler{uowf: uowf, log: baseLog.With("handler", "ListLevels")}
}

func (h *ListLevelsHandler) Handle(ctx context.Context, q ListLevelsQuery) (result.Result[[]dto.LevelDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	rows, err := u.Levels().List(ctx)
	if err != nil {
		return result.Result[[]dto.LevelDTO]{}, err
	}
	return result.Success(dto.MapLevels(rows)), nil
}

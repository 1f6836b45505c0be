package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/features/sports"
	"github.com/matchpointhq/matchpoint-backend/internal/http/response"
	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/ctxutil"
)

type SportHandler struct {
	m *mediator.Mediator
}

func NewSportHandler(m *mediator.Mediator) *SportHandler {
	return &SportHandler{m: m}
}

type createSportRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *SportHandler) Create(c *gin.Context) {
	var req createSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.SportDTO](c.Request.Context(), h.m, sports.CreateSportCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Created(c, res)
}

func (h *SportHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	res, err := mediator.Send[[]dto.SportDTO](c.Request.Context(), h.m, sports.ListSportsQuery{Offset: offset, Limit: limit})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *SportHandler) ListPopular(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "5"))
	res, err := mediator.Send[[]dto.SportDTO](c.Request.Context(), h.m, sports.GetPopularSportsQuery{Count: count})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *SportHandler) ListLevels(c *gin.Context) {
	res, err := mediator.Send[[]dto.LevelDTO](c.Request.Context(), h.m, sports.ListLevelsQuery{})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

type addUserSportRequest struct {
	SportID uuid.UUID `json:"sport_id"`
	LevelID uuid.UUID `json:"level_id"`
}

func (h *SportHandler) AddUserSport(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req addUserSportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.UserSportDTO](c.Request.Context(), h.m, sports.AddUserSportCommand{
		UserID:  rd.UserID,
		SportID: req.SportID,
		LevelID: req.LevelID,
	})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

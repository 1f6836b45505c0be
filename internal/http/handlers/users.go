package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/features/users"
	"github.com/matchpointhq/matchpoint-backend/internal/http/response"
	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/ctxutil"
)

type UserHandler struct {
	m *mediator.Mediator
}

func NewUserHandler(m *mediator.Mediator) *UserHandler {
	return &UserHandler{m: m}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	res, err := mediator.Send[dto.UserDTO](c.Request.Context(), h.m, users.GetUserByIDQuery{UserID: rd.UserID})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.UserDTO](c.Request.Context(), h.m, users.GetUserByIDQuery{UserID: id})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	res, err := mediator.Send[[]dto.UserDTO](c.Request.Context(), h.m, users.ListUsersQuery{Offset: offset, Limit: limit})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	var performedBy uuid.UUID
	if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
		performedBy = rd.UserID
	}
	res, err := mediator.Send[uuid.UUID](c.Request.Context(), h.m, users.DeleteUserCommand{
		UserID:      id,
		PerformedBy: performedBy,
	})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

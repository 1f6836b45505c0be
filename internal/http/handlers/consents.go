package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/features/consents"
	"github.com/matchpointhq/matchpoint-backend/internal/http/response"
	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/ctxutil"
)

// ConsentHandler exposes the authenticated user's consent decisions.
type ConsentHandler struct {
	m *mediator.Mediator
}

func NewConsentHandler(m *mediator.Mediator) *ConsentHandler {
	return &ConsentHandler{m: m}
}

type grantConsentRequest struct {
	ConsentType string         `json:"consent_type"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

func (h *ConsentHandler) Grant(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req grantConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.ConsentDTO](c.Request.Context(), h.m, consents.GrantConsentCommand{
		UserID:      rd.UserID,
		ConsentType: req.ConsentType,
		Metadata:    req.Metadata,
	})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *ConsentHandler) Revoke(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	res, err := mediator.Send[dto.ConsentDTO](c.Request.Context(), h.m, consents.RevokeConsentCommand{
		UserID:      rd.UserID,
		ConsentType: c.Param("type"),
		PerformedBy: rd.UserID,
	})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *ConsentHandler) List(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	res, err := mediator.Send[[]dto.ConsentDTO](c.Request.Context(), h.m, consents.ListUserConsentsQuery{UserID: rd.UserID})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

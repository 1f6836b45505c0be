package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/features/auth"
	"github.com/matchpointhq/matchpoint-backend/internal/http/response"
	"github.com/matchpointhq/matchpoint-backend/internal/mediator"
)

// AuthHandler deserializes auth requests into commands and dispatches them.
// All business outcomes, including invalid credentials, come back through the
// Result envelope.
type AuthHandler struct {
	m *mediator.Mediator
}

func NewAuthHandler(m *mediator.Mediator) *AuthHandler {
	return &AuthHandler{m: m}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.UserDTO](c.Request.Context(), h.m, auth.RegisterUserCommand{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Created(c, res)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.TokenPairDTO](c.Request.Context(), h.m, auth.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.TokenPairDTO](c.Request.Context(), h.m, auth.RefreshTokenCommand{Token: req.Token})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[string](c.Request.Context(), h.m, auth.LogoutCommand{Token: req.Token})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

func (h *AuthHandler) Revoke(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	res, err := mediator.Send[dto.SessionDTO](c.Request.Context(), h.m, auth.RevokeTokenCommand{Token: req.Token})
	if err != nil {
		response.Fault(c, err)
		return
	}
	response.Result(c, res)
}

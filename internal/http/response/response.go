package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchpointhq/matchpoint-backend/internal/platform/apierr"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Envelope is the uniform success/failure body. Business failures ride in it
// with HTTP 400; only infrastructure faults use the error envelope and 5xx.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Result writes res as JSON: 200 for success, 400 for a business failure.
func Result[T any](c *gin.Context, res result.Result[T]) {
	if res.IsFailure() {
		c.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Message: res.Message(),
			Errors:  res.Errors(),
		})
		return
	}
	env := Envelope{Success: true, Message: res.Message()}
	if v, ok := res.Value(); ok {
		env.Data = v
	}
	c.JSON(http.StatusOK, env)
}

// Created is Result with a 201 on success.
func Created[T any](c *gin.Context, res result.Result[T]) {
	if res.IsFailure() {
		Result(c, res)
		return
	}
	env := Envelope{Success: true, Message: res.Message()}
	if v, ok := res.Value(); ok {
		env.Data = v
	}
	c.JSON(http.StatusCreated, env)
}

// Fault maps an infrastructure error to its status. The raw error never
// reaches the client.
func Fault(c *gin.Context, err error) {
	status := apierr.Status(err)
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: http.StatusText(status),
			Code:    "internal_error",
		},
	})
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/repos"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/dto"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
	"github.com/matchpointhq/matchpoint-backend/internal/validation"
)

type GetUserByIDQuery struct {
	UserID uuid.UUID
}

type ListUsersQuery struct {
	Offset int
	Limit  int
}

type GetUserByIDValidator struct{}

func (GetUserByIDValidator) Validate(q GetUserByIDQuery) []validation.Violation {
	if q.UserID == uuid.Nil {
		return []validation.Violation{{Field: "user_id", Message: "user_id is required"}}
	}
	return nil
}

type ListUsersValidator struct{}

func (ListUsersValidator) Validate(q ListUsersQuery) []validation.Violation {
	var out []validation.Violation
	if q.Offset < 0 {
		out = append(out, validation.Violation{Field: "offset", Message: "offset must not be negative"})
	}
	if q.Limit < 0 {
		out = append(out, validation.Violation{Field: "limit", Message: "limit must not be negative"})
	}
	return out
}

type GetUserByIDHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewGetUserByIDHandler(uowf uow.Factory, baseLog *logger.Logger) *GetUserByIDHandler {
	return &GetUserByIDHandler{uowf: uowf, log: baseLog.With("handler", "GetUserByID")}
}

func (h *GetUserByIDHandler) Handle(ctx context.Context, q GetUserByIDQuery) (result.Result[dto.UserDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	user, err := u.Users().GetByID(ctx, q.UserID)
	if err != nil {
		return result.Result[dto.UserDTO]{}, err
	}
	if user == nil {
		return result.Failure[dto.UserDTO]("User not found"), nil
	}
	return result.Success(dto.MapUser(user)), nil
}

type ListUsersHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewListUsersHandler(uowf uow.Factory, baseLog *logger.Logger) *ListUsersHandler {
	return &ListUsersHandler{uowf: uowf, log: baseLog.With("handler", "ListUsers")}
}

func (h *ListUsersHandler) Handle(ctx context.Context, q ListUsersQuery) (result.Result[[]dto.UserDTO], error) {
	u := h.uowf.New()
	defer u.Close()

	rows, err := u.Users().List(ctx, repos.Page{Offset: q.Offset, Limit: q.Limit})
	if err != nil {
		return result.Result[[]dto.UserDTO]{}, err
	}
	return result.Success(dto.MapUsers(rows)), nil
}

package users

import (
	"context"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
	"github.com/matchpointhq/matchpoint-backend/internal/result"
	"github.com/matchpointhq/matchpoint-backend/internal/validation"
)

type DeleteUserCommand struct {
	UserID      uuid.UUID
	PerformedBy uuid.UUID
}

type DeleteUserValidator struct{}

func (DeleteUserValidator) Validate(cmd DeleteUserCommand) []validation.Violation {
	if cmd.UserID == uuid.Nil {
		return []validation.Violation{{Field: "user_id", Message: "user_id is required"}}
	}
	return nil
}

type DeleteUserHandler struct {
	uowf uow.Factory
	log  *logger.Logger
}

func NewDeleteUserHandler(uowf uow.Factory, baseLog *logger.Logger) *DeleteUserHandler {
	return &DeleteUserHandler{uowf: uowf, log: baseLog.With("handler", "DeleteUser")}
}

// Handle soft-deletes the user and records an audit entry. Both land in the
// same transaction so the trail never disagrees with the table.
func (h *DeleteUserHandler) Handle(ctx context.Context, cmd DeleteUserCommand) (result.Result[uuid.UUID], error) {
	u := h.uowf.New()
	defer u.Close()

	user, err := u.Users().GetByID(ctx, cmd.UserID)
	if err != nil {
		return result.Result[uuid.UUID]{}, err
	}
	if user == nil {
		return result.Failure[uuid.UUID]("User not found"), nil
	}

	entry, err := domain.NewAuditLog(domain.User{}.TableName(), user.ID, "delete", cmd.PerformedBy, map[string]any{
		"email": user.Email,
	})
	if err != nil {
		return result.Result[uuid.UUID]{}, err
	}

	if err := u.Begin(ctx); err != nil {
		return result.Result[uuid.UUID]{}, err
	}
	u.Users().Remove(user)
	u.AuditLogs().Add(entry)
	if _, err := u.SaveChanges(ctx); err != nil {
		_ = u.Rollback(ctx)
		return result.Result[uuid.UUID]{}, err
	}
	if err := u.Commit(ctx); err != nil {
		return result.Result[uuid.UUID]{}, err
	}

	h.log.Info("user deleted", "user_id", user.ID.String())
	return result.SuccessWithMessage(user.ID, "User deleted successfully"), nil
}

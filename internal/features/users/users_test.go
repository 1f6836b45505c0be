package users_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/memory"
	"github.com/matchpointhq/matchpoint-backend/internal/data/repos"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/features/users"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

func seedUsers(t *testing.T, uowf uow.Factory, n int) []*domain.User {
	t.Helper()
	u := uowf.New()
	defer u.Close()
	out := make([]*domain.User, 0, n)
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < n; i++ {
		user := &domain.User{
			ID:        uuid.New(),
			Email:     fmt.Sprintf("user%02d@example.com", i),
			Password:  "irrelevant",
			FirstName: "First",
			LastName:  "Last",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		u.Users().Add(user)
		out = append(out, user)
	}
	if _, err := u.SaveChanges(context.Background()); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return out
}

func TestGetUserByID(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	seeded := seedUsers(t, uowf, 1)

	h := users.NewGetUserByIDHandler(uowf, logger.NewNop())

	res, err := h.Handle(context.Background(), users.GetUserByIDQuery{UserID: seeded[0].ID})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	got, ok := res.Value()
	if !ok || got.ID != seeded[0].ID {
		t.Fatalf("expected seeded user, got %v", res.Errors())
	}

	missing, err := h.Handle(context.Background(), users.GetUserByIDQuery{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("handle missing: %v", err)
	}
	if missing.IsSuccess() || missing.Message() != "User not found" {
		t.Fatalf("expected not-found failure, got %v", missing)
	}
}

func TestListUsersPaging(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	seeded := seedUsers(t, uowf, 5)

	h := users.NewListUsersHandler(uowf, logger.NewNop())

	res, err := h.Handle(context.Background(), users.ListUsersQuery{Offset: 1, Limit: 2})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	page, ok := res.Value()
	if !ok {
		t.Fatalf("expected value, got %v", res.Errors())
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page))
	}
	if page[0].ID != seeded[1].ID || page[1].ID != seeded[2].ID {
		t.Fatalf("expected creation-time ordering with offset")
	}
}

func TestDeleteUserWritesAuditEntry(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	seeded := seedUsers(t, uowf, 1)
	admin := uuid.New()

	h := users.NewDeleteUserHandler(uowf, logger.NewNop())

	res, err := h.Handle(context.Background(), users.DeleteUserCommand{UserID: seeded[0].ID, PerformedBy: admin})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !res.IsSuccess() {
		t.Fatalf("expected success, got %v", res.Errors())
	}

	u := uowf.New()
	defer u.Close()
	gone, err := u.Users().GetByID(context.Background(), seeded[0].ID)
	if err != nil {
		t.Fatalf("lookup user: %v", err)
	}
	if gone != nil {
		t.Fatalf("deleted user must not be readable")
	}
	trail, err := u.AuditLogs().ListByTable(context.Background(), domain.User{}.TableName(), repos.Page{})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(trail) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(trail))
	}
	if trail[0].RecordID != seeded[0].ID || trail[0].Action != "delete" || trail[0].PerformedBy != admin {
		t.Fatalf("audit entry mismatched: %+v", trail[0])
	}
}

func TestDeleteUserRollsBackWhenAuditFails(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	seeded := seedUsers(t, uowf, 1)

	h := users.NewDeleteUserHandler(uowf, logger.NewNop())

	store.FailNext("insert audit log", context.DeadlineExceeded)
	if _, err := h.Handle(context.Background(), users.DeleteUserCommand{UserID: seeded[0].ID}); err == nil {
		t.Fatalf("expected audit fault to surface as error")
	}

	u := uowf.New()
	defer u.Close()
	still, err := u.Users().GetByID(context.Background(), seeded[0].ID)
	if err != nil {
		t.Fatalf("lookup user: %v", err)
	}
	if still == nil {
		t.Fatalf("failed delete must leave the user readable")
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)

	h := users.NewDeleteUserHandler(uowf, logger.NewNop())

	res, err := h.Handle(context.Background(), users.DeleteUserCommand{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if res.IsSuccess() || res.Message() != "User not found" {
		t.Fatalf("expected not-found failure, got %v", res)
	}
}

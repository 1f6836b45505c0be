package sports_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/memory"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/features/sports"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

type fixture struct {
	store *memory.Store
	uowf  uow.Factory
	log   *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{store: store, uowf: memory.NewFactory(store), log: logger.NewNop()}
}

func (f *fixture) seedUser(t *testing.T) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	user := &domain.User{ID: uuid.New(), Email: fmt.Sprintf("%s@example.com", uuid.NewString()[:8]), Password: "x", CreatedAt: now, UpdatedAt: now}
	u := f.uowf.New()
	defer u.Close()
	u.Users().Add(user)
	if _, err := u.SaveChanges(context.Background()); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (f *fixture) seedSport(t *testing.T, name string) *domain.Sport {
	t.Helper()
	now := time.Now().UTC()
	sport := &domain.Sport{ID: uuid.New(), Name: name, CreatedAt: now, UpdatedAt: now}
	u := f.uowf.New()
	defer u.Close()
	u.Sports().Add(sport)
	if _, err := u.SaveChanges(context.Background()); err != nil {
		t.Fatalf("seed sport: %v", err)
	}
	return sport
}

func (f *fixture) seedLevel(t *testing.T, name string, rank int) *domain.Level {
	t.Helper()
	level := &domain.Level{ID: uuid.New(), Name: name, Rank: rank, CreatedAt: time.Now().UTC()}
	u := f.uowf.New()
	defer u.Close()
	u.Levels().Add(level)
	if _, err := u.SaveChanges(context.Background()); err != nil {
		t.Fatalf("seed level: %v", err)
	}
	return level
}

func (f *fixture) link(t *testing.T, userID, sportID, levelID uuid.UUID) {
	t.Helper()
	now := time.Now().UTC()
	u := f.uowf.New()
	defer u.Close()
	u.UserSports().Add(&domain.UserSport{ID: uuid.New(), UserID: userID, SportID: sportID, LevelID: levelID, CreatedAt: now, UpdatedAt: now})
	if _, err := u.SaveChanges(context.Background()); err != nil {
		t.Fatalf("seed user sport: %v", err)
	}
}

func TestCreateSportDuplicateCheck(t *testing.T) {
	f := newFixture(t)
	h := sports.NewCreateSportHandler(f.uowf, f.log)

	first, err := h.Handle(context.Background(), sports.CreateSportCommand{Name: "Tennis", Description: "Racket sport"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	created, ok := first.Value()
	if !ok || created.Name != "Tennis" {
		t.Fatalf("expected created sport, got %v", first.Errors())
	}

	second, err := h.Handle(context.Background(), sports.CreateSportCommand{Name: "Tennis"})
	if err != nil {
		t.Fatalf("handle duplicate: %v", err)
	}
	if second.IsSuccess() || second.Message() != "Sport already exists" {
		t.Fatalf("expected duplicate failure, got %v", second)
	}

	// Exactly one row persisted.
	list := sports.NewListSportsHandler(f.uowf, f.log)
	res, err := list.Handle(context.Background(), sports.ListSportsQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	rows, _ := res.Value()
	if len(rows) != 1 {
		t.Fatalf("expected one sport, got %d", len(rows))
	}
}

func TestGetPopularSportsRanking(t *testing.T) {
	f := newFixture(t)
	tennis := f.seedSport(t, "Tennis")
	padel := f.seedSport(t, "Padel")
	chess := f.seedSport(t, "Chess")
	level := f.seedLevel(t, "Beginner", 1)

	for i := 0; i < 3; i++ {
		f.link(t, f.seedUser(t).ID, padel.ID, level.ID)
	}
	f.link(t, f.seedUser(t).ID, tennis.ID, level.ID)

	h := sports.NewGetPopularSportsHandler(f.uowf, f.log)
	res, err := h.Handle(context.Background(), sports.GetPopularSportsQuery{Count: 2})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	rows, ok := res.Value()
	if !ok {
		t.Fatalf("expected value, got %v", res.Errors())
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 sports, got %d", len(rows))
	}
	if rows[0].ID != padel.ID || rows[1].ID != tennis.ID {
		t.Fatalf("expected popularity ordering, got %v", rows)
	}
	_ = chess
}

func TestAddUserSport(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	sport := f.seedSport(t, "Tennis")
	beginner := f.seedLevel(t, "Beginner", 1)
	advanced := f.seedLevel(t, "Advanced", 3)

	h := sports.NewAddUserSportHandler(f.uowf, f.log)

	res, err := h.Handle(context.Background(), sports.AddUserSportCommand{UserID: user.ID, SportID: sport.ID, LevelID: beginner.ID})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	link, ok := res.Value()
	if !ok || link.LevelID != beginner.ID {
		t.Fatalf("expected link at beginner, got %v", res.Errors())
	}

	// Linking the same sport again moves the level instead of adding a row.
	again, err := h.Handle(context.Background(), sports.AddUserSportCommand{UserID: user.ID, SportID: sport.ID, LevelID: advanced.ID})
	if err != nil {
		t.Fatalf("handle again: %v", err)
	}
	moved, ok := again.Value()
	if !ok || moved.ID != link.ID || moved.LevelID != advanced.ID {
		t.Fatalf("expected same row at advanced, got %+v", moved)
	}

	u := f.uowf.New()
	defer u.Close()
	count, err := u.UserSports().CountBySport(context.Background(), sport.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one link, got %d", count)
	}
}

func TestAddUserSportMissingAggregates(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	sport := f.seedSport(t, "Tennis")
	level := f.seedLevel(t, "Beginner", 1)

	h := sports.NewAddUserSportHandler(f.uowf, f.log)

	cases := []struct {
		name    string
		cmd     sports.AddUserSportCommand
		message string
	}{
		{"user", sports.AddUserSportCommand{UserID: uuid.New(), SportID: sport.ID, LevelID: level.ID}, "User not found"},
		{"sport", sports.AddUserSportCommand{UserID: user.ID, SportID: uuid.New(), LevelID: level.ID}, "Sport not found"},
		{"level", sports.AddUserSportCommand{UserID: user.ID, SportID: sport.ID, LevelID: uuid.New()}, "Level not found"},
	}
	for _, tc := range cases {
		res, err := h.Handle(context.Background(), tc.cmd)
		if err != nil {
			t.Fatalf("%s: handle: %v", tc.name, err)
		}
		if res.IsSuccess() || res.Message() != tc.message {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.message, res)
		}
	}
}

func TestListLevelsOrderedByRank(t *testing.T) {
	f := newFixture(t)
	f.seedLevel(t, "Advanced", 3)
	f.seedLevel(t, "Beginner", 1)
	f.seedLevel(t, "Intermediate", 2)

	h := sports.NewListLevelsHandler(f.uowf, f.log)
	res, err := h.Handle(context.Background(), sports.ListLevelsQuery{})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	rows, ok := res.Value()
	if !ok || len(rows) != 3 {
		t.Fatalf("expected 3 levels, got %v", res)
	}
	for i, name := range []string{"Beginner", "Intermediate", "Advanced"} {
		if rows[i].Name != name {
			t.Fatalf("expected rank ordering, got %v", rows)
		}
	}
}

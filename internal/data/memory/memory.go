package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/data/repos"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
)

// Store is an in-memory backend satisfying the unit-of-work contract. It keeps
// handler and pipeline tests hermetic and doubles as a reference for what the
// contract requires of any storage engine. It intentionally favors clarity
// over performance.
type Store struct {
	mu     sync.Mutex
	tables tables

	// failOn maps a staged-change op name to an error injected the next time
	// that op is applied. Tests use it to simulate infrastructure faults.
	failOn map[string]error
}

type tables struct {
	users      map[uuid.UUID]domain.User
	sessions   map[uuid.UUID]domain.Session
	consents   map[uuid.UUID]domain.UserConsent
	auditLogs  []domain.AuditLog
	sports     map[uuid.UUID]domain.Sport
	levels     map[uuid.UUID]domain.Level
	userSports map[uuid.UUID]domain.UserSport
}

func NewStore() *Store {
	return &Store{
		tables: tables{
			users:      make(map[uuid.UUID]domain.User),
			sessions:   make(map[uuid.UUID]domain.Session),
			consents:   make(map[uuid.UUID]domain.UserConsent),
			sports:     make(map[uuid.UUID]domain.Sport),
			levels:     make(map[uuid.UUID]domain.Level),
			userSports: make(map[uuid.UUID]domain.UserSport),
		},
		failOn: make(map[string]error),
	}
}

// FailNext makes the next staged change whose op matches fail with err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

func (t tables) clone() tables {
	cp := tables{
		users:      make(map[uuid.UUID]domain.User, len(t.users)),
		sessions:   make(map[uuid.UUID]domain.Session, len(t.sessions)),
		consents:   make(map[uuid.UUID]domain.UserConsent, len(t.consents)),
		auditLogs:  append([]domain.AuditLog(nil), t.auditLogs...),
		sports:     make(map[uuid.UUID]domain.Sport, len(t.sports)),
		levels:     make(map[uuid.UUID]domain.Level, len(t.levels)),
		userSports: make(map[uuid.UUID]domain.UserSport, len(t.userSports)),
	}
	for k, v := range t.users {
		cp.users[k] = v
	}
	for k, v := range t.sessions {
		cp.sessions[k] = v
	}
	for k, v := range t.consents {
		cp.consents[k] = v
	}
	for k, v := range t.sports {
		cp.sports[k] = v
	}
	for k, v := range t.levels {
		cp.levels[k] = v
	}
	for k, v := range t.userSports {
		cp.userSports[k] = v
	}
	return cp
}

// Factory mints in-memory units of work sharing one Store.
type Factory struct {
	store *Store
}

func NewFactory(store *Store) *Factory {
	return &Factory{store: store}
}

func (f *Factory) New() uow.UnitOfWork {
	u := &unitOfWork{store: f.store}
	u.users = &userRepo{u: u}
	u.sessions = &sessionRepo{u: u}
	u.consents = &consentRepo{u: u}
	u.auditLogs = &auditLogRepo{u: u}
	u.sports = &sportRepo{u: u}
	u.levels = &levelRepo{u: u}
	u.userSports = &userSportRepo{u: u}
	return u
}

type stagedOp struct {
	op    string
	apply func(t *tables) int64
}

type unitOfWork struct {
	store    *Store
	staged   []stagedOp
	snapshot *tables
	closed   bool

	users      repos.UserRepo
	sessions   repos.SessionRepo
	consents   repos.ConsentRepo
	auditLogs  repos.AuditLogRepo
	sports     repos.SportRepo
	levels     repos.LevelRepo
	userSports repos.UserSportRepo
}

func (u *unitOfWork) Users() repos.UserRepo           { return u.users }
func (u *unitOfWork) Sessions() repos.SessionRepo     { return u.sessions }
func (u *unitOfWork) Consents() repos.ConsentRepo     { return u.consents }
func (u *unitOfWork) AuditLogs() repos.AuditLogRepo   { return u.auditLogs }
func (u *unitOfWork) Sports() repos.SportRepo         { return u.sports }
func (u *unitOfWork) Levels() repos.LevelRepo         { return u.levels }
func (u *unitOfWork) UserSports() repos.UserSportRepo { return u.userSports }

func (u *unitOfWork) Begin(ctx context.Context) error {
	u.mustBeOpen()
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	snap := u.store.tables.clone()
	u.snapshot = &snap
	return nil
}

func (u *unitOfWork) Commit(ctx context.Context) error {
	u.mustBeOpen()
	u.snapshot = nil
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	u.mustBeOpen()
	if u.snapshot == nil {
		return nil
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.tables = *u.snapshot
	u.snapshot = nil
	u.staged = nil
	return nil
}

func (u *unitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	u.mustBeOpen()
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(u.staged) == 0 {
		return 0, nil
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	// Without an explicit transaction the flush itself must be atomic.
	var restore *tables
	if u.snapshot == nil {
		snap := u.store.tables.clone()
		restore = &snap
	}

	var total int64
	for _, ch := range u.staged {
		if err, hit := u.store.failOn[ch.op]; hit {
			delete(u.store.failOn, ch.op)
			if restore != nil {
				u.store.tables = *restore
			}
			return 0, err
		}
		total += ch.apply(&u.store.tables)
	}
	u.staged = nil
	return total, nil
}

func (u *unitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	if u.snapshot != nil {
		u.store.mu.Lock()
		u.store.tables = *u.snapshot
		u.store.mu.Unlock()
		u.snapshot = nil
	}
	u.staged = nil
	return nil
}

func (u *unitOfWork) mustBeOpen() {
	if u.closed {
		panic("memory uow: used after Close")
	}
}

func (u *unitOfWork) read(fn func(t *tables)) {
	u.mustBeOpen()
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	fn(&u.store.tables)
}

func (u *unitOfWork) stage(op string, apply func(t *tables) int64) {
	u.mustBeOpen()
	u.staged = append(u.staged, stagedOp{op: op, apply: apply})
}

// --- repositories ---

type userRepo struct{ u *unitOfWork }

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var out *domain.User
	r.u.read(func(t *tables) {
		if row, ok := t.users[id]; ok && !row.DeletedAt.Valid {
			cp := row
			out = &cp
		}
	})
	return out, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var out *domain.User
	r.u.read(func(t *tables) {
		for _, row := range t.users {
			if !row.DeletedAt.Valid && strings.EqualFold(row.Email, email) {
				cp := row
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *userRepo) List(ctx context.Context, page repos.Page) ([]*domain.User, error) {
	var rows []*domain.User
	r.u.read(func(t *tables) {
		for _, row := range t.users {
			if !row.DeletedAt.Valid {
				cp := row
				rows = append(rows, &cp)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return paginate(rows, page), nil
}

func (r *userRepo) Add(user *domain.User) {
	cp := *user
	r.u.stage("insert user", func(t *tables) int64 {
		t.users[cp.ID] = cp
		return 1
	})
}

func (r *userRepo) Update(user *domain.User) {
	cp := *user
	r.u.stage("update user", func(t *tables) int64 {
		t.users[cp.ID] = cp
		return 1
	})
}

func (r *userRepo) Remove(user *domain.User) {
	id := user.ID
	r.u.stage("delete user", func(t *tables) int64 {
		row, ok := t.users[id]
		if !ok || row.DeletedAt.Valid {
			return 0
		}
		row.DeletedAt = gorm.DeletedAt{Time: time.Now().UTC(), Valid: true}
		t.users[id] = row
		return 1
	})
}

type sessionRepo struct{ u *unitOfWork }

func (r *sessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var out *domain.Session
	r.u.read(func(t *tables) {
		if row, ok := t.sessions[id]; ok {
			cp := row
			out = &cp
		}
	})
	return out, nil
}

func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var out *domain.Session
	r.u.read(func(t *tables) {
		for _, row := range t.sessions {
			if row.Token == token {
				cp := row
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	var rows []*domain.Session
	r.u.read(func(t *tables) {
		for _, row := range t.sessions {
			if row.UserID == userID {
				cp := row
				rows = append(rows, &cp)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (r *sessionRepo) Add(session *domain.Session) {
	cp := *session
	r.u.stage("insert session", func(t *tables) int64 {
		t.sessions[cp.ID] = cp
		return 1
	})
}

func (r *sessionRepo) Update(session *domain.Session) {
	cp := *session
	r.u.stage("update session", func(t *tables) int64 {
		t.sessions[cp.ID] = cp
		return 1
	})
}

func (r *sessionRepo) Remove(session *domain.Session) {
	id := session.ID
	r.u.stage("delete session", func(t *tables) int64 {
		if _, ok := t.sessions[id]; !ok {
			return 0
		}
		delete(t.sessions, id)
		return 1
	})
}

type consentRepo struct{ u *unitOfWork }

func (r *consentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserConsent, error) {
	var out *domain.UserConsent
	r.u.read(func(t *tables) {
		if row, ok := t.consents[id]; ok {
			cp := row
			out = &cp
		}
	})
	return out, nil
}

func (r *consentRepo) GetByUserAndType(ctx context.Context, userID uuid.UUID, consentType string) (*domain.UserConsent, error) {
	var out *domain.UserConsent
	r.u.read(func(t *tables) {
		for _, row := range t.consents {
			if row.UserID == userID && row.ConsentType == consentType {
				cp := row
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *consentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserConsent, error) {
	var rows []*domain.UserConsent
	r.u.read(func(t *tables) {
		for _, row := range t.consents {
			if row.UserID == userID {
				cp := row
				rows = append(rows, &cp)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

func (r *consentRepo) Add(consent *domain.UserConsent) {
	cp := *consent
	r.u.stage("insert consent", func(t *tables) int64 {
		t.consents[cp.ID] = cp
		return 1
	})
}

func (r *consentRepo) Update(consent *domain.UserConsent) {
	cp := *consent
	r.u.stage("update consent", func(t *tables) int64 {
		t.consents[cp.ID] = cp
		return 1
	})
}

func (r *consentRepo) Remove(consent *domain.UserConsent) {
	id := consent.ID
	r.u.stage("delete consent", func(t *tables) int64 {
		if _, ok := t.consents[id]; !ok {
			return 0
		}
		delete(t.consents, id)
		return 1
	})
}

type auditLogRepo struct{ u *unitOfWork }

func (r *auditLogRepo) ListByTable(ctx context.Context, table string, page repos.Page) ([]*domain.AuditLog, error) {
	var rows []*domain.AuditLog
	r.u.read(func(t *tables) {
		for i := range t.auditLogs {
			if t.auditLogs[i].Table == table {
				cp := t.auditLogs[i]
				rows = append(rows, &cp)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return paginate(rows, page), nil
}

func (r *auditLogRepo) Add(entry *domain.AuditLog) {
	cp := *entry
	r.u.stage("insert audit log", func(t *tables) int64 {
		t.auditLogs = append(t.auditLogs, cp)
		return 1
	})
}

type sportRepo struct{ u *unitOfWork }

func (r *sportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sport, error) {
	var out *domain.Sport
	r.u.read(func(t *tables) {
		if row, ok := t.sports[id]; ok && !row.DeletedAt.Valid {
			cp := row
			out = &cp
		}
	})
	return out, nil
}

func (r *sportRepo) GetByName(ctx context.Context, name string) (*domain.Sport, error) {
	name = strings.TrimSpace(name)
	var out *domain.Sport
	r.u.read(func(t *tables) {
		for _, row := range t.sports {
			if !row.DeletedAt.Valid && strings.EqualFold(row.Name, name) {
				cp := row
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *sportRepo) List(ctx context.Context, page repos.Page) ([]*domain.Sport, error) {
	var rows []*domain.Sport
	r.u.read(func(t *tables) {
		for _, row := range t.sports {
			if !row.DeletedAt.Valid {
				cp := row
				rows = append(rows, &cp)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return paginate(rows, page), nil
}

func (r *sportRepo) ListPopular(ctx context.Context, count int) ([]*domain.Sport, error) {
	if count <= 0 {
		return nil, nil
	}
	type ranked struct {
		sport   domain.Sport
		players int
	}
	var all []ranked
	r.u.read(func(t *tables) {
		counts := make(map[uuid.UUID]int)
		for _, link := range t.userSports {
			counts[link.SportID]++
		}
		for _, row := range t.sports {
			if !row.DeletedAt.Valid {
				all = append(all, ranked{sport: row, players: counts[row.ID]})
			}
		}
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].players != all[j].players {
			return all[i].players > all[j].players
		}
		return all[i].sport.Name < all[j].sport.Name
	})
	if len(all) > count {
		all = all[:count]
	}
	rows := make([]*domain.Sport, len(all))
	for i := range all {
		cp := all[i].sport
		rows[i] = &cp
	}
	return rows, nil
}

func (r *sportRepo) Add(sport *domain.Sport) {
	cp := *sport
	r.u.stage("insert sport", func(t *tables) int64 {
		t.sports[cp.ID] = cp
		return 1
	})
}

func (r *sportRepo) Update(sport *domain.Sport) {
	cp := *sport
	r.u.stage("update sport", func(t *tables) int64 {
		t.sports[cp.ID] = cp
		return 1
	})
}

func (r *sportRepo) Remove(sport *domain.Sport) {
	id := sport.ID
	r.u.stage("delete sport", func(t *tables) int64 {
		row, ok := t.sports[id]
		if !ok || row.DeletedAt.Valid {
			return 0
		}
		row.DeletedAt = gorm.DeletedAt{Time: time.Now().UTC(), Valid: true}
		t.sports[id] = row
		return 1
	})
}

type levelRepo struct{ u *unitOfWork }

func (r *levelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Level, error) {
	var out *domain.Level
	r.u.read(func(t *tables) {
		if row, ok := t.levels[id]; ok {
			cp := row
			out = &cp
		}
	})
	return out, nil
}

func (r *levelRepo) List(ctx context.Context) ([]*domain.Level, error) {
	var rows []*domain.Level
	r.u.read(func(t *tables) {
		for _, row := range t.levels {
			cp := row
			rows = append(rows, &cp)
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
	return rows, nil
}

func (r *levelRepo) Add(level *domain.Level) {
	cp := *level
	r.u.stage("insert level", func(t *tables) int64 {
		t.levels[cp.ID] = cp
		return 1
	})
}

type userSportRepo struct{ u *unitOfWork }

func (r *userSportRepo) GetByUserAndSport(ctx context.Context, userID, sportID uuid.UUID) (*domain.UserSport, error) {
	var out *domain.UserSport
	r.u.read(func(t *tables) {
		for _, row := range t.userSports {
			if row.UserID == userID && row.SportID == sportID {
				cp := row
				out = &cp
				return
			}
		}
	})
	return out, nil
}

func (r *userSportRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserSport, error) {
	var rows []*domain.UserSport
	r.u.read(func(t *tables) {
		for _, row := range t.userSports {
			if row.UserID == userID {
				cp := row
				rows = append(rows, &cp)
			}
		}
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

func (r *userSportRepo) CountBySport(ctx context.Context, sportID uuid.UUID) (int64, error) {
	var n int64
	r.u.read(func(t *tables) {
		for _, row := range t.userSports {
			if row.SportID == sportID {
				n++
			}
		}
	})
	return n, nil
}

func (r *userSportRepo) Add(link *domain.UserSport) {
	cp := *link
	r.u.stage("insert user sport", func(t *tables) int64 {
		t.userSports[cp.ID] = cp
		return 1
	})
}

func (r *userSportRepo) Update(link *domain.UserSport) {
	cp := *link
	r.u.stage("update user sport", func(t *tables) int64 {
		t.userSports[cp.ID] = cp
		return 1
	})
}

func (r *userSportRepo) Remove(link *domain.UserSport) {
	id := link.ID
	r.u.stage("delete user sport", func(t *tables) int64 {
		if _, ok := t.userSports[id]; !ok {
			return 0
		}
		delete(t.userSports, id)
		return 1
	})
}

func paginate[T any](rows []*T, page repos.Page) []*T {
	offset := page.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	limit := page.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

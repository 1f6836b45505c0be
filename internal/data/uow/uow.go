package uow

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/data/repos"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// UnitOfWork owns one logical transaction boundary for one request and hands
// out a stable repository instance per aggregate. Writes staged through those
// repositories become durable only when SaveChanges succeeds.
//
// Single-aggregate handlers call SaveChanges alone and get one-transaction
// atomicity for the flush. Handlers mutating several aggregates wrap the flush
// in Begin/Commit and roll back on any failure, so cancellation or a storage
// fault mid-flight never leaves a partial mutation committed.
//
// A UnitOfWork is request-scoped and not safe for concurrent use. Close
// releases it: an open transaction rolls back and every repository obtained
// from it becomes unusable (using one afterwards panics).
type UnitOfWork interface {
	Users() repos.UserRepo
	Sessions() repos.SessionRepo
	Consents() repos.ConsentRepo
	AuditLogs() repos.AuditLogRepo
	Sports() repos.SportRepo
	Levels() repos.LevelRepo
	UserSports() repos.UserSportRepo

	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// SaveChanges flushes every staged change, in staging order, inside the
	// open transaction (or one of its own), and returns the number of rows
	// persisted. With nothing staged it is a no-op returning 0.
	SaveChanges(ctx context.Context) (int64, error)

	Close() error
}

// Factory mints one UnitOfWork per request.
type Factory interface {
	New() UnitOfWork
}

type gormFactory struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFactory(db *gorm.DB, baseLog *logger.Logger) Factory {
	return &gormFactory{db: db, log: baseLog.With("component", "UnitOfWork")}
}

func (f *gormFactory) New() UnitOfWork {
	u := &gormUnitOfWork{db: f.db, log: f.log}
	u.users = repos.NewUserRepo(u, f.log)
	u.sessions = repos.NewSessionRepo(u, f.log)
	u.consents = repos.NewConsentRepo(u, f.log)
	u.auditLogs = repos.NewAuditLogRepo(u, f.log)
	u.sports = repos.NewSportRepo(u, f.log)
	u.levels = repos.NewLevelRepo(u, f.log)
	u.userSports = repos.NewUserSportRepo(u, f.log)
	return u
}

type gormUnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	log    *logger.Logger
	staged []repos.Change
	closed bool

	users      repos.UserRepo
	sessions   repos.SessionRepo
	consents   repos.ConsentRepo
	auditLogs  repos.AuditLogRepo
	sports     repos.SportRepo
	levels     repos.LevelRepo
	userSports repos.UserSportRepo
}

func (u *gormUnitOfWork) Users() repos.UserRepo           { return u.users }
func (u *gormUnitOfWork) Sessions() repos.SessionRepo     { return u.sessions }
func (u *gormUnitOfWork) Consents() repos.ConsentRepo     { return u.consents }
func (u *gormUnitOfWork) AuditLogs() repos.AuditLogRepo   { return u.auditLogs }
func (u *gormUnitOfWork) Sports() repos.SportRepo         { return u.sports }
func (u *gormUnitOfWork) Levels() repos.LevelRepo         { return u.levels }
func (u *gormUnitOfWork) UserSports() repos.UserSportRepo { return u.userSports }

// DB returns the open transaction when one exists, the base handle otherwise.
// Implements repos.Conn.
func (u *gormUnitOfWork) DB(ctx context.Context) *gorm.DB {
	u.mustBeOpen()
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Stage implements repos.Conn.
func (u *gormUnitOfWork) Stage(change repos.Change) {
	u.mustBeOpen()
	u.staged = append(u.staged, change)
}

func (u *gormUnitOfWork) Begin(ctx context.Context) error {
	u.mustBeOpen()
	if u.tx != nil {
		return fmt.Errorf("uow: transaction already open")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("uow: begin: %w", tx.Error)
	}
	u.tx = tx
	return nil
}

func (u *gormUnitOfWork) Commit(ctx context.Context) error {
	u.mustBeOpen()
	if u.tx == nil {
		return fmt.Errorf("uow: no open transaction to commit")
	}
	if err := u.tx.Commit().Error; err != nil {
		return fmt.Errorf("uow: commit: %w", err)
	}
	u.tx = nil
	return nil
}

func (u *gormUnitOfWork) Rollback(ctx context.Context) error {
	u.mustBeOpen()
	if u.tx == nil {
		return fmt.Errorf("uow: no open transaction to roll back")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	u.staged = nil
	if err != nil {
		return fmt.Errorf("uow: rollback: %w", err)
	}
	return nil
}

func (u *gormUnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	u.mustBeOpen()
	if len(u.staged) == 0 {
		return 0, nil
	}
	var total int64
	apply := func(tx *gorm.DB) error {
		for _, ch := range u.staged {
			n, err := ch.Apply(tx.WithContext(ctx))
			if err != nil {
				return fmt.Errorf("%s: %w", ch.Op, err)
			}
			total += n
		}
		return nil
	}

	if u.tx != nil {
		if err := apply(u.tx); err != nil {
			return 0, err
		}
	} else {
		if err := u.db.WithContext(ctx).Transaction(apply); err != nil {
			return 0, err
		}
	}
	u.staged = nil
	return total, nil
}

func (u *gormUnitOfWork) Close() error {
	if u.closed {
		return nil
	}
	u.closed = true
	u.staged = nil
	if u.tx != nil {
		err := u.tx.Rollback().Error
		u.tx = nil
		if err != nil {
			u.log.Warn("rollback on close failed", "error", err)
			return err
		}
	}
	return nil
}

func (u *gormUnitOfWork) mustBeOpen() {
	if u.closed {
		panic("uow: used after Close")
	}
}

package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// UserRepo is the persistence port for the User aggregate. Reads execute
// immediately; Add/Update/Remove stage changes on the owning unit of work.
// Soft-deleted users are excluded from every lookup.
type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page Page) ([]*domain.User, error)
	Add(user *domain.User)
	Update(user *domain.User)
	Remove(user *domain.User)
}

type userRepo struct {
	conn Conn
	log  *logger.Logger
}

func NewUserRepo(conn Conn, baseLog *logger.Logger) UserRepo {
	return &userRepo{conn: conn, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.User
	err := r.conn.DB(ctx).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var row domain.User
	err := r.conn.DB(ctx).WithContext(ctx).Where("email = ?", email).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *userRepo) List(ctx context.Context, page Page) ([]*domain.User, error) {
	page = page.normalize()
	var rows []*domain.User
	err := r.conn.DB(ctx).WithContext(ctx).
		Order("created_at ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userRepo) Add(user *domain.User) {
	r.conn.Stage(Change{Op: "insert user", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Create(user)
		return res.RowsAffected, res.Error
	}})
}

func (r *userRepo) Update(user *domain.User) {
	r.conn.Stage(Change{Op: "update user", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Save(user)
		return res.RowsAffected, res.Error
	}})
}

func (r *userRepo) Remove(user *domain.User) {
	r.conn.Stage(Change{Op: "delete user", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(user)
		return res.RowsAffected, res.Error
	}})
}

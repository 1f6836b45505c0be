package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// UserSportRepo is the persistence port for user-to-sport links.
type UserSportRepo interface {
	GetByUserAndSport(ctx context.Context, userID, sportID uuid.UUID) (*domain.UserSport, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserSport, error)
	CountBySport(ctx context.Context, sportID uuid.UUID) (int64, error)
	Add(link *domain.UserSport)
	Update(link *domain.UserSport)
	Remove(link *domain.UserSport)
}

type userSportRepo struct {
	conn Conn
	log  *logger.Logger
}

func NewUserSportRepo(conn Conn, baseLog *logger.Logger) UserSportRepo {
	return &userSportRepo{conn: conn, log: baseLog.With("repo", "UserSportRepo")}
}

func (r *userSportRepo) GetByUserAndSport(ctx context.Context, userID, sportID uuid.UUID) (*domain.UserSport, error) {
	if userID == uuid.Nil || sportID == uuid.Nil {
		return nil, nil
	}
	var row domain.UserSport
	err := r.conn.DB(ctx).WithContext(ctx).
		Where("user_id = ? AND sport_id = ?", userID, sportID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *userSportRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserSport, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.UserSport
	err := r.conn.DB(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userSportRepo) CountBySport(ctx context.Context, sportID uuid.UUID) (int64, error) {
	if sportID == uuid.Nil {
		return 0, nil
	}
	var n int64
	err := r.conn.DB(ctx).WithContext(ctx).
		Model(&domain.UserSport{}).
		Where("sport_id = ?", sportID).
		Count(&n).Error
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (r *userSportRepo) Add(link *domain.UserSport) {
	r.conn.Stage(Change{Op: "insert user sport", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Create(link)
		return res.RowsAffected, res.Error
	}})
}

func (r *userSportRepo) Update(link *domain.UserSport) {
	r.conn.Stage(Change{Op: "update user sport", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Save(link)
		return res.RowsAffected, res.Error
	}})
}

func (r *userSportRepo) Remove(link *domain.UserSport) {
	r.conn.Stage(Change{Op: "delete user sport", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(link)
		return res.RowsAffected, res.Error
	}})
}

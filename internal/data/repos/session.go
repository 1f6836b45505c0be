package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// SessionRepo is the persistence port for login sessions.
type SessionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error)
	Add(session *domain.Session)
	Update(session *domain.Session)
	Remove(session *domain.Session)
}

type sessionRepo struct {
	conn Conn
	log  *logger.Logger
}

func NewSessionRepo(conn Conn, baseLog *logger.Logger) SessionRepo {
	return &sessionRepo{conn: conn, log: baseLog.With("repo", "SessionRepo")}
}

func (r *sessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Session
	err := r.conn.DB(ctx).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	var row domain.Session
	err := r.conn.DB(ctx).WithContext(ctx).Where("token = ?", token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *sessionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Session, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.Session
	err := r.conn.DB(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sessionRepo) Add(session *domain.Session) {
	r.conn.Stage(Change{Op: "insert session", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Create(session)
		return res.RowsAffected, res.Error
	}})
}

func (r *sessionRepo) Update(session *domain.Session) {
	r.conn.Stage(Change{Op: "update session", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Save(session)
		return res.RowsAffected, res.Error
	}})
}

func (r *sessionRepo) Remove(session *domain.Session) {
	r.conn.Stage(Change{Op: "delete session", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(session)
		return res.RowsAffected, res.Error
	}})
}

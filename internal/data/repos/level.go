package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// LevelRepo is the persistence port for proficiency levels. Levels are seeded
// reference data; handlers only read them.
type LevelRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Level, error)
	List(ctx context.Context) ([]*domain.Level, error)
	Add(level *domain.Level)
}

type levelRepo struct {
	conn Conn
	log  *logger.Logger
}

func NewLevelRepo(conn Conn, baseLog *logger.Logger) LevelRepo {
	return &levelRepo{conn: conn, log: baseLog.With("repo", "LevelRepo")}
}

func (r *levelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Level, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Level
	err := r.conn.DB(ctx).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *levelRepo) List(ctx context.Context) ([]*domain.Level, error) {
	var rows []*domain.Level
	err := r.conn.DB(ctx).WithContext(ctx).Order("rank ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *levelRepo) Add(level *domain.Level) {
	r.conn.Stage(Change{Op: "insert level", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Create(level)
		return res.RowsAffected, res.Error
	}})
}

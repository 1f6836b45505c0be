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

// SportRepo is the persistence port for the sport catalog.
type SportRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sport, error)
	GetByName(ctx context.Context, name string) (*domain.Sport, error)
	List(ctx context.Context, page Page) ([]*domain.Sport, error)
	// ListPopular returns at most count sports ordered by how many users play
	// them, most popular first.
	ListPopular(ctx context.Context, count int) ([]*domain.Sport, error)
	Add(sport *domain.Sport)
	Update(sport *domain.Sport)
	Remove(sport *domain.Sport)
}

type sportRepo struct {
	conn Conn
	log  *logger.Logger
}

func NewSportRepo(conn Conn, baseLog *logger.Logger) SportRepo {
	return &sportRepo{conn: conn, log: baseLog.With("repo", "SportRepo")}
}

func (r *sportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sport, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.Sport
	err := r.conn.DB(ctx).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *sportRepo) GetByName(ctx context.Context, name string) (*domain.Sport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	var row domain.Sport
	err := r.conn.DB(ctx).WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *sportRepo) List(ctx context.Context, page Page) ([]*domain.Sport, error) {
	page = page.normalize()
	var rows []*domain.Sport
	err := r.conn.DB(ctx).WithContext(ctx).
		Order("name ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sportRepo) ListPopular(ctx context.Context, count int) ([]*domain.Sport, error) {
	if count <= 0 {
		return nil, nil
	}
	var rows []*domain.Sport
	err := r.conn.DB(ctx).WithContext(ctx).
		Model(&domain.Sport{}).
		Joins("LEFT JOIN user_sport ON user_sport.sport_id = sport.id").
		Group("sport.id").
		Order("COUNT(user_sport.id) DESC, sport.name ASC").
		Limit(count).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sportRepo) Add(sport *domain.Sport) {
	r.conn.Stage(Change{Op: "insert sport", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Create(sport)
		return res.RowsAffected, res.Error
	}})
}

func (r *sportRepo) Update(sport *domain.Sport) {
	r.conn.Stage(Change{Op: "update sport", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Save(sport)
		return res.RowsAffected, res.Error
	}})
}

func (r *sportRepo) Remove(sport *domain.Sport) {
	r.conn.Stage(Change{Op: "delete sport", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(sport)
		return res.RowsAffected, res.Error
	}})
}

package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// ConsentRepo is the persistence port for user consents. One row exists per
// user and consent type; revocations keep the row.
type ConsentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.UserConsent, error)
	GetByUserAndType(ctx context.Context, userID uuid.UUID, consentType string) (*domain.UserConsent, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserConsent, error)
	Add(consent *domain.UserConsent)
	Update(consent *domain.UserConsent)
	Remove(consent *domain.UserConsent)
}

type consentRepo struct {
	conn Conn
	log  *logger.Logger
}

func NewConsentRepo(conn Conn, baseLog *logger.Logger) ConsentRepo {
	return &consentRepo{conn: conn, log: baseLog.With("repo", "ConsentRepo")}
}

func (r *consentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserConsent, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var row domain.UserConsent
	err := r.conn.DB(ctx).WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *consentRepo) GetByUserAndType(ctx context.Context, userID uuid.UUID, consentType string) (*domain.UserConsent, error) {
	if userID == uuid.Nil || consentType == "" {
		return nil, nil
	}
	var row domain.UserConsent
	err := r.conn.DB(ctx).WithContext(ctx).
		Where("user_id = ? AND consent_type = ?", userID, consentType).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *consentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.UserConsent, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	var rows []*domain.UserConsent
	err := r.conn.DB(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *consentRepo) Add(consent *domain.UserConsent) {
	r.conn.Stage(Change{Op: "insert consent", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Create(consent)
		return res.RowsAffected, res.Error
	}})
}

func (r *consentRepo) Update(consent *domain.UserConsent) {
	r.conn.Stage(Change{Op: "update consent", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Save(consent)
		return res.RowsAffected, res.Error
	}})
}

func (r *consentRepo) Remove(consent *domain.UserConsent) {
	r.conn.Stage(Change{Op: "delete consent", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(consent)
		return res.RowsAffected, res.Error
	}})
}

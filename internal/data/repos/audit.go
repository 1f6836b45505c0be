package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// AuditLogRepo is the persistence port for the append-only audit trail.
type AuditLogRepo interface {
	ListByTable(ctx context.Context, table string, page Page) ([]*domain.AuditLog, error)
	Add(entry *domain.AuditLog)
}

type auditLogRepo struct {
	conn Conn
	log  *logger.Logger
}

func NewAuditLogRepo(conn Conn, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{conn: conn, log: baseLog.With("repo", "AuditLogRepo")}
}

func (r *auditLogRepo) ListByTable(ctx context.Context, table string, page Page) ([]*domain.AuditLog, error) {
	if table == "" {
		return nil, nil
	}
	page = page.normalize()
	var rows []*domain.AuditLog
	err := r.conn.DB(ctx).WithContext(ctx).
		Where("table_name = ?", table).
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *auditLogRepo) Add(entry *domain.AuditLog) {
	r.conn.Stage(Change{Op: "insert audit log", Apply: func(tx *gorm.DB) (int64, error) {
		res := tx.Create(entry)
		return res.RowsAffected, res.Error
	}})
}

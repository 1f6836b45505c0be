package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a mutation against another aggregate.
// Rows are never updated or deleted.
type AuditLog struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Table    string    `gorm:"not null;column:table_name;index" json:"table_name"`
	RecordID uuid.UUID `gorm:"type:uuid;not null;column:record_id;index" json:"record_id"`
	Action   string    `gorm:"not null;column:action" json:"action"`

	Details     datatypes.JSON `gorm:"column:details;type:jsonb" json:"details,omitempty"`
	PerformedBy uuid.UUID      `gorm:"type:uuid;column:performed_by;index" json:"performed_by"`

	CreatedAt time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_log" }

// NewAuditLog builds an audit entry with its details serialized to jsonb.
func NewAuditLog(table string, recordID uuid.UUID, action string, performedBy uuid.UUID, details map[string]any) (*AuditLog, error) {
	entry := &AuditLog{
		ID:          uuid.New(),
		Table:       table,
		RecordID:    recordID,
		Action:      action,
		PerformedBy: performedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return nil, fmt.Errorf("marshal audit details: %w", err)
		}
		entry.Details = datatypes.JSON(raw)
	}
	return entry, nil
}

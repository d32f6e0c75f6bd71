// Package audit defines the append-only audit trail entry and its sink.
package audit

import (
	"context"
	"time"
)

type Entry struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	Entity      string    `gorm:"size:64" json:"entity"`
	EntityID    string    `gorm:"size:64;index:idx_audit_entity" json:"entity_id"`
	Action      string    `gorm:"size:64" json:"action"`
	ActorUserID string    `gorm:"size:32" json:"actor_user_id"`
	At          time.Time `gorm:"autoCreateTime" json:"at"`
	Metadata    string    `gorm:"type:text" json:"metadata,omitempty"` // JSON at the storage boundary
}

func (Entry) TableName() string { return "audit_log" }

// Sink appends best-effort: implementations log failures and never block or
// fail the primary operation.
type Sink interface {
	Append(ctx context.Context, entity, entityID, action, actorUserID string, metadata map[string]any)
}

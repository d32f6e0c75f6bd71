package mysql

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"lms-backend/internal/domain/audit"
)

// AuditSink persists audit entries on its own connection so a failed append
// never rolls back or fails the audited operation.
type AuditSink struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewAuditSink(db *gorm.DB, log *zap.SugaredLogger) *AuditSink {
	return &AuditSink{db: db, log: log}
}

func (s *AuditSink) Append(ctx context.Context, entity, entityID, action, actorUserID string, metadata map[string]any) {
	entry := audit.Entry{
		Entity:      entity,
		EntityID:    entityID,
		Action:      action,
		ActorUserID: actorUserID,
	}
	if len(metadata) > 0 {
		raw, err := json.Marshal(metadata)
		if err != nil {
			s.log.Warnw("audit metadata encode failed", "entity", entity, "entity_id", entityID, "error", err)
		} else {
			entry.Metadata = string(raw)
		}
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Warnw("audit append failed",
			"entity", entity,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
	}
}

// Package notify delivers notifications: each one is persisted for the
// in-app feed and pushed onto a redis outbox list for external channel
// workers. Delivery is best-effort; failures are logged, never returned.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	notifDomain "lms-backend/internal/domain/notification"
)

const (
	outboxKey      = "notifications:outbox"
	deliverTimeout = 2 * time.Second
)

type Sink struct {
	repo notifDomain.Repository
	rdb  *redis.Client
	log  *zap.SugaredLogger
}

var _ notifDomain.Sink = (*Sink)(nil)

func NewSink(repo notifDomain.Repository, rdb *redis.Client, log *zap.SugaredLogger) *Sink {
	return &Sink{repo: repo, rdb: rdb, log: log}
}

func (s *Sink) Enqueue(ctx context.Context, n *notifDomain.Notification) {
	ctx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, n); err != nil {
		s.log.Warnw("notify: persist failed",
			"notification_id", n.NotificationID,
			"user_id", n.UserID,
			"type", n.Type,
			"error", err,
		)
		return
	}

	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(n)
	if err != nil {
		s.log.Warnw("notify: encode failed", "notification_id", n.NotificationID, "error", err)
		return
	}
	if err := s.rdb.LPush(ctx, outboxKey, payload).Err(); err != nil {
		s.log.Warnw("notify: outbox push failed", "notification_id", n.NotificationID, "error", err)
	}
}

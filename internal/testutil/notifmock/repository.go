package notifmock

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "lms-backend/internal/domain/notification"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, n *domain.Notification) error
	ListByUserFn  func(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkReadFn    func(ctx context.Context, notificationID, userID string) error
	ExistsSinceFn func(ctx context.Context, userID, typ, entityID string, since time.Time) (bool, error)
}

func (m *Repo) Create(ctx context.Context, n *domain.Notification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, n)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, unreadOnly, limit)
	}
	return nil, nil
}

func (m *Repo) MarkRead(ctx context.Context, notificationID, userID string) error {
	if m.MarkReadFn != nil {
		return m.MarkReadFn(ctx, notificationID, userID)
	}
	return gorm.ErrRecordNotFound
}

func (m *Repo) ExistsSince(ctx context.Context, userID, typ, entityID string, since time.Time) (bool, error) {
	if m.ExistsSinceFn != nil {
		return m.ExistsSinceFn(ctx, userID, typ, entityID, since)
	}
	return false, nil
}

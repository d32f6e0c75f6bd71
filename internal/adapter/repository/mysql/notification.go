package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	notifDomain "lms-backend/internal/domain/notification"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notifDomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]notifDomain.Notification, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	var out []notifDomain.Notification
	res := q.Order("created_at desc, id desc").Limit(limit).Find(&out)
	return out, res.Error
}

func (r *NotificationRepository) MarkRead(ctx context.Context, notificationID, userID string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&notifDomain.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) ExistsSince(ctx context.Context, userID, typ, entityID string, since time.Time) (bool, error) {
	var count int64
	res := r.db.WithContext(ctx).
		Model(&notifDomain.Notification{}).
		Where("user_id = ? AND type = ? AND created_at >= ? AND payload LIKE ?",
			userID, typ, since, "%"+entityID+"%").
		Count(&count)
	return count > 0, res.Error
}

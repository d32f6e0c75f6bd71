package notification

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lms-backend/internal/domain/apperr"
	notifDomain "lms-backend/internal/domain/notification"
)

const listLimit = 200

type Usecase struct {
	notifications notifDomain.Repository
}

func NewUsecase(repo notifDomain.Repository) *Usecase {
	return &Usecase{notifications: repo}
}

// ListMine needs no guard check: rows are already scoped to the actor.
func (u *Usecase) ListMine(ctx context.Context, actorID string, unreadOnly bool) ([]notifDomain.Notification, error) {
	return u.notifications.ListByUser(ctx, actorID, unreadOnly, listLimit)
}

func (u *Usecase) MarkRead(ctx context.Context, actorID, notificationID string) error {
	err := u.notifications.MarkRead(ctx, notificationID, actorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: notification", apperr.ErrNotFound)
	}
	return err
}

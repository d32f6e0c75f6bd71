// Package reminder implements the scheduler-invoked sweep: a read-only
// consumer of the core entities that enqueues overdue/due-soon/stale
// notifications. It never mutates loans, schedules or applications.
package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"

	appDomain "lms-backend/internal/domain/application"
	loanDomain "lms-backend/internal/domain/loan"
	notifDomain "lms-backend/internal/domain/notification"
	taskDomain "lms-backend/internal/domain/task"
	"lms-backend/pkg/id"
)

const (
	taskDueSoonDays  = 3
	staleAfterDays   = 14
	dedupeWindowHard = 24 * time.Hour
)

type Sweeper struct {
	apps   appDomain.Repository
	loans  loanDomain.Repository
	tasks  taskDomain.Repository
	notifs notifDomain.Repository
	sink   notifDomain.Sink
	log    *zap.SugaredLogger
}

func NewSweeper(
	apps appDomain.Repository,
	loans loanDomain.Repository,
	tasks taskDomain.Repository,
	notifs notifDomain.Repository,
	sink notifDomain.Sink,
	log *zap.SugaredLogger,
) *Sweeper {
	return &Sweeper{apps: apps, loans: loans, tasks: tasks, notifs: notifs, sink: sink, log: log}
}

// Start runs the sweep on a fixed interval until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Run(ctx)
			}
		}
	}()
}

// Run executes one sweep. Scan failures are logged and do not abort the
// remaining scans.
func (s *Sweeper) Run(ctx context.Context) {
	if err := s.scanArrears(ctx); err != nil {
		s.log.Errorw("reminder: arrears scan failed", "err", err)
	}
	if err := s.scanDueTasks(ctx); err != nil {
		s.log.Errorw("reminder: task scan failed", "err", err)
	}
	if err := s.scanStaleApplications(ctx); err != nil {
		s.log.Errorw("reminder: stale application scan failed", "err", err)
	}
}

func (s *Sweeper) scanArrears(ctx context.Context) error {
	now := time.Now().UTC()
	items, err := s.loans.Arrears(ctx, now)
	if err != nil {
		return err
	}
	for _, item := range items {
		proj, err := s.apps.SecurityProjection(ctx, item.AppID)
		if err != nil || proj.ClientOwnerUserID == "" {
			continue
		}
		ok, err := s.shouldNotify(ctx, proj.ClientOwnerUserID, notifDomain.ArrearsReminderPayload{}.Kind(), item.LoanID, now)
		if err != nil || !ok {
			continue
		}
		s.enqueue(ctx, proj.ClientOwnerUserID,
			"Repayment overdue",
			"Your repayment is overdue. Please make payment as soon as possible.",
			notifDomain.ArrearsReminderPayload{LoanID: item.LoanID, AppID: item.AppID})
	}
	return nil
}

func (s *Sweeper) scanDueTasks(ctx context.Context) error {
	now := time.Now().UTC()
	horizon := now.AddDate(0, 0, taskDueSoonDays)
	tasks, err := s.tasks.DueSoon(ctx, horizon)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if t.AssignedTo == "" {
			continue
		}
		ok, err := s.shouldNotify(ctx, t.AssignedTo, notifDomain.TaskReminderPayload{}.Kind(), t.TaskID, now)
		if err != nil || !ok {
			continue
		}
		s.enqueue(ctx, t.AssignedTo,
			"Task reminder",
			"You have an open task due soon.",
			notifDomain.TaskReminderPayload{TaskID: t.TaskID, AppID: t.AppID})
	}
	return nil
}

func (s *Sweeper) scanStaleApplications(ctx context.Context) error {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -staleAfterDays)
	apps, err := s.apps.ListStale(ctx, cutoff)
	if err != nil {
		return err
	}
	for _, app := range apps {
		if app.AssignedToUserID == "" {
			continue
		}
		ok, err := s.shouldNotify(ctx, app.AssignedToUserID, notifDomain.StaleApplicationPayload{}.Kind(), app.AppID, now)
		if err != nil || !ok {
			continue
		}
		s.enqueue(ctx, app.AssignedToUserID,
			"Application needs attention",
			"An application assigned to you has not progressed recently.",
			notifDomain.StaleApplicationPayload{AppID: app.AppID, Status: string(app.Status)})
	}
	return nil
}

// shouldNotify dedupes to at most one notification per (user, type, entity)
// per day.
func (s *Sweeper) shouldNotify(ctx context.Context, userID, typ, entityID string, now time.Time) (bool, error) {
	exists, err := s.notifs.ExistsSince(ctx, userID, typ, entityID, now.Add(-dedupeWindowHard))
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *Sweeper) enqueue(ctx context.Context, userID, title, message string, payload notifDomain.Payload) {
	n := &notifDomain.Notification{
		NotificationID: id.NewID32(),
		UserID:         userID,
		Channel:        "InApp",
		Title:          title,
		Message:        message,
		Status:         "Sent",
	}
	if err := n.SetPayload(payload); err != nil {
		s.log.Errorw("reminder: encode payload", "err", err)
		return
	}
	s.sink.Enqueue(ctx, n)
}

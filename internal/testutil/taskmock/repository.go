package taskmock

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "lms-backend/internal/domain/task"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, t *domain.Task) error
	GetByTaskIDFn func(ctx context.Context, taskID string) (*domain.Task, error)
	SaveFn        func(ctx context.Context, t *domain.Task) error
	ListFn        func(ctx context.Context, f domain.Filter) ([]domain.Task, error)
	DueSoonFn     func(ctx context.Context, horizon time.Time) ([]domain.Task, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTaskID(ctx context.Context, taskID string) (*domain.Task, error) {
	if m.GetByTaskIDFn != nil {
		return m.GetByTaskIDFn(ctx, taskID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, t *domain.Task) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) DueSoon(ctx context.Context, horizon time.Time) ([]domain.Task, error) {
	if m.DueSoonFn != nil {
		return m.DueSoonFn(ctx, horizon)
	}
	return nil, nil
}

package clientmock

import (
	"context"

	"gorm.io/gorm"

	domain "lms-backend/internal/domain/client"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, c *domain.Client) error
	SaveFn          func(ctx context.Context, c *domain.Client) error
	GetByClientIDFn func(ctx context.Context, clientID string) (*domain.Client, error)
	ListAllFn       func(ctx context.Context) ([]domain.Client, error)
	FirstOwnedByFn  func(ctx context.Context, userID string) (*domain.Client, error)
	OwnsFn          func(ctx context.Context, userID, clientID string) (bool, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, c *domain.Client) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Client, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) GetByClientID(ctx context.Context, clientID string) (*domain.Client, error) {
	if m.GetByClientIDFn != nil {
		return m.GetByClientIDFn(ctx, clientID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) FirstOwnedBy(ctx context.Context, userID string) (*domain.Client, error) {
	if m.FirstOwnedByFn != nil {
		return m.FirstOwnedByFn(ctx, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Owns(ctx context.Context, userID, clientID string) (bool, error) {
	if m.OwnsFn != nil {
		return m.OwnsFn(ctx, userID, clientID)
	}
	return false, nil
}

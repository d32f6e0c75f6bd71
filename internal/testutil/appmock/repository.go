package appmock

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "lms-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in only the function fields a test needs.
type Repo struct {
	CreateFn             func(ctx context.Context, a *domain.Application) error
	GetByAppIDFn         func(ctx context.Context, appID string) (*domain.Application, error)
	SaveFn               func(ctx context.Context, a *domain.Application) error
	ListAllFn            func(ctx context.Context) ([]domain.Application, error)
	ListByAssigneeFn     func(ctx context.Context, userID string) ([]domain.Application, error)
	ListByClientOwnerFn  func(ctx context.Context, userID string) ([]domain.Application, error)
	ListStaleFn          func(ctx context.Context, cutoff time.Time) ([]domain.Application, error)
	SecurityProjectionFn func(ctx context.Context, appID string) (*domain.SecurityProjection, error)
	AppendHistoryFn      func(ctx context.Context, h *domain.StatusHistory) error
	ListHistoryFn        func(ctx context.Context, appID string) ([]domain.StatusHistory, error)
	CreateNoteFn         func(ctx context.Context, n *domain.Note) error
	ListNotesFn          func(ctx context.Context, appID string) ([]domain.Note, error)
	CreateDocumentFn     func(ctx context.Context, d *domain.Document) error
	ListDocumentsFn      func(ctx context.Context, appID string) ([]domain.Document, error)
	GetDocumentFn        func(ctx context.Context, appID, documentID string) (*domain.Document, error)
	SaveDocumentFn       func(ctx context.Context, d *domain.Document) error
	CreateRequirementFn  func(ctx context.Context, dr *domain.DocumentRequirement) error
	ListRequirementsFn   func(ctx context.Context) ([]domain.DocumentRequirement, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAppID(ctx context.Context, appID string) (*domain.Application, error) {
	if m.GetByAppIDFn != nil {
		return m.GetByAppIDFn(ctx, appID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Application, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByAssignee(ctx context.Context, userID string) ([]domain.Application, error) {
	if m.ListByAssigneeFn != nil {
		return m.ListByAssigneeFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) ListByClientOwner(ctx context.Context, userID string) ([]domain.Application, error) {
	if m.ListByClientOwnerFn != nil {
		return m.ListByClientOwnerFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) ListStale(ctx context.Context, cutoff time.Time) ([]domain.Application, error) {
	if m.ListStaleFn != nil {
		return m.ListStaleFn(ctx, cutoff)
	}
	return nil, nil
}

func (m *Repo) SecurityProjection(ctx context.Context, appID string) (*domain.SecurityProjection, error) {
	if m.SecurityProjectionFn != nil {
		return m.SecurityProjectionFn(ctx, appID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) AppendHistory(ctx context.Context, h *domain.StatusHistory) error {
	if m.AppendHistoryFn != nil {
		return m.AppendHistoryFn(ctx, h)
	}
	return nil
}

func (m *Repo) ListHistory(ctx context.Context, appID string) ([]domain.StatusHistory, error) {
	if m.ListHistoryFn != nil {
		return m.ListHistoryFn(ctx, appID)
	}
	return nil, nil
}

func (m *Repo) CreateNote(ctx context.Context, n *domain.Note) error {
	if m.CreateNoteFn != nil {
		return m.CreateNoteFn(ctx, n)
	}
	return nil
}

func (m *Repo) ListNotes(ctx context.Context, appID string) ([]domain.Note, error) {
	if m.ListNotesFn != nil {
		return m.ListNotesFn(ctx, appID)
	}
	return nil, nil
}

func (m *Repo) CreateDocument(ctx context.Context, d *domain.Document) error {
	if m.CreateDocumentFn != nil {
		return m.CreateDocumentFn(ctx, d)
	}
	return nil
}

func (m *Repo) ListDocuments(ctx context.Context, appID string) ([]domain.Document, error) {
	if m.ListDocumentsFn != nil {
		return m.ListDocumentsFn(ctx, appID)
	}
	return nil, nil
}

func (m *Repo) GetDocument(ctx context.Context, appID, documentID string) (*domain.Document, error) {
	if m.GetDocumentFn != nil {
		return m.GetDocumentFn(ctx, appID, documentID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) SaveDocument(ctx context.Context, d *domain.Document) error {
	if m.SaveDocumentFn != nil {
		return m.SaveDocumentFn(ctx, d)
	}
	return nil
}

func (m *Repo) CreateRequirement(ctx context.Context, dr *domain.DocumentRequirement) error {
	if m.CreateRequirementFn != nil {
		return m.CreateRequirementFn(ctx, dr)
	}
	return nil
}

func (m *Repo) ListRequirements(ctx context.Context) ([]domain.DocumentRequirement, error) {
	if m.ListRequirementsFn != nil {
		return m.ListRequirementsFn(ctx)
	}
	return nil, nil
}

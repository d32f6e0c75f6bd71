package application

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByAppID(ctx context.Context, appID string) (*Application, error)
	Save(ctx context.Context, a *Application) error

	// ListAll / ListByAssignee / ListByClientOwner back the role-scoped
	// list operation; the usecase picks one per the actor's roles.
	ListAll(ctx context.Context) ([]Application, error)
	ListByAssignee(ctx context.Context, userID string) ([]Application, error)
	ListByClientOwner(ctx context.Context, userID string) ([]Application, error)

	// ListStale returns applications sitting in an in-flight review status
	// (Submitted/UnderReview/InfoRequested) untouched since the cutoff;
	// consumed by the reminder sweep.
	ListStale(ctx context.Context, cutoff time.Time) ([]Application, error)

	// SecurityProjection joins the owning client; returns gorm.ErrRecordNotFound
	// semantics like the getters.
	SecurityProjection(ctx context.Context, appID string) (*SecurityProjection, error)

	AppendHistory(ctx context.Context, h *StatusHistory) error
	ListHistory(ctx context.Context, appID string) ([]StatusHistory, error)

	CreateNote(ctx context.Context, n *Note) error
	ListNotes(ctx context.Context, appID string) ([]Note, error)

	CreateDocument(ctx context.Context, d *Document) error
	ListDocuments(ctx context.Context, appID string) ([]Document, error)
	GetDocument(ctx context.Context, appID, documentID string) (*Document, error)
	SaveDocument(ctx context.Context, d *Document) error

	CreateRequirement(ctx context.Context, dr *DocumentRequirement) error
	ListRequirements(ctx context.Context) ([]DocumentRequirement, error)
}

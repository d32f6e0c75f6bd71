package task

import (
	"context"
	"time"
)

// Filter narrows List; zero values mean "no constraint".
type Filter struct {
	AppID      string
	AssignedTo string
	// VisibleTo limits rows to tasks assigned to the user or belonging to
	// an application whose client profile the user owns.
	VisibleTo string
}

type Repository interface {
	Create(ctx context.Context, t *Task) error
	GetByTaskID(ctx context.Context, taskID string) (*Task, error)
	Save(ctx context.Context, t *Task) error
	List(ctx context.Context, f Filter) ([]Task, error)

	// DueSoon returns open tasks with a due date up to the horizon,
	// consumed by the reminder sweep.
	DueSoon(ctx context.Context, horizon time.Time) ([]Task, error)
}

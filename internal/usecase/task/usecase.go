package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"lms-backend/internal/domain/apperr"
	appDomain "lms-backend/internal/domain/application"
	"lms-backend/internal/domain/audit"
	taskDomain "lms-backend/internal/domain/task"
	"lms-backend/internal/guard"
	"lms-backend/pkg/id"
)

type Usecase struct {
	tasks taskDomain.Repository
	apps  appDomain.Repository
	roles guard.RoleResolver
	audit audit.Sink
}

func NewUsecase(tasks taskDomain.Repository, apps appDomain.Repository, roles guard.RoleResolver, auditSink audit.Sink) *Usecase {
	return &Usecase{tasks: tasks, apps: apps, roles: roles, audit: auditSink}
}

type CreateInput struct {
	AppID      string     `json:"application_id"`
	Title      string     `json:"title"`
	AssignedTo string     `json:"assigned_to"`
	DueDate    *time.Time `json:"due_date"`
}

type UpdateInput struct {
	Status     taskDomain.Status `json:"status"`
	AssignedTo string            `json:"assigned_to"`
	DueDate    *time.Time        `json:"due_date"`
}

// List scopes rows by role: staff see everything, others see tasks assigned
// to them or belonging to an application they own.
func (u *Usecase) List(ctx context.Context, actorID, appID string, assignedToMe bool) ([]taskDomain.Task, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}

	f := taskDomain.Filter{AppID: appID}
	if assignedToMe {
		f.AssignedTo = actorID
	} else if !guard.IsStaff(roles) {
		f.VisibleTo = actorID
	}
	return u.tasks.List(ctx, f)
}

func (u *Usecase) Create(ctx context.Context, actorID string, in CreateInput) (*taskDomain.Task, error) {
	if strings.TrimSpace(in.Title) == "" || in.AppID == "" {
		return nil, fmt.Errorf("%w: application_id and title are required", apperr.ErrValidation)
	}

	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !guard.IsStaff(roles) && !guard.IsAssignedWorker(roles) {
		return nil, fmt.Errorf("%w: only internal users can create tasks", apperr.ErrForbidden)
	}

	proj, err := u.apps.SecurityProjection(ctx, in.AppID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: application", apperr.ErrNotFound)
		}
		return nil, err
	}
	if !guard.CanAccess(roles, actorID, guard.Projection{
		AssignedToUserID:  proj.AssignedToUserID,
		ClientOwnerUserID: proj.ClientOwnerUserID,
	}) {
		return nil, fmt.Errorf("%w: cannot access this application", apperr.ErrForbidden)
	}

	t := &taskDomain.Task{
		TaskID:     id.NewID32(),
		AppID:      in.AppID,
		Title:      in.Title,
		Status:     taskDomain.StatusOpen,
		AssignedTo: in.AssignedTo,
		DueDate:    in.DueDate,
	}
	if err := u.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	u.audit.Append(ctx, "tasks", t.TaskID, "CreateTask", actorID, map[string]any{
		"applicationId": in.AppID,
		"title":         in.Title,
	})
	return t, nil
}

func (u *Usecase) Update(ctx context.Context, actorID, taskID string, in UpdateInput) (*taskDomain.Task, error) {
	roles, err := u.roles.Roles(ctx, actorID)
	if err != nil {
		return nil, err
	}

	t, err := u.tasks.GetByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: task", apperr.ErrNotFound)
		}
		return nil, err
	}

	// Staff may edit any task; everyone else only tasks assigned to them.
	if !guard.IsStaff(roles) && t.AssignedTo != actorID {
		return nil, fmt.Errorf("%w: cannot modify this task", apperr.ErrForbidden)
	}

	if in.Status != "" {
		if in.Status != taskDomain.StatusOpen && in.Status != taskDomain.StatusDone {
			return nil, fmt.Errorf("%w: unknown task status %q", apperr.ErrValidation, in.Status)
		}
		t.Status = in.Status
	}
	if guard.IsStaff(roles) {
		if in.AssignedTo != "" {
			t.AssignedTo = in.AssignedTo
		}
		if in.DueDate != nil {
			t.DueDate = in.DueDate
		}
	}

	if err := u.tasks.Save(ctx, t); err != nil {
		return nil, err
	}
	u.audit.Append(ctx, "tasks", t.TaskID, "UpdateTask", actorID, map[string]any{
		"status":     string(t.Status),
		"assignedTo": t.AssignedTo,
	})
	return t, nil
}

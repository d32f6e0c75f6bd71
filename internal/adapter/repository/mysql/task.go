package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	taskDomain "lms-backend/internal/domain/task"
)

type TaskRepository struct{ db *gorm.DB }

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *taskDomain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) Save(ctx context.Context, t *taskDomain.Task) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TaskRepository) GetByTaskID(ctx context.Context, taskID string) (*taskDomain.Task, error) {
	var out taskDomain.Task
	res := r.db.WithContext(ctx).Where("task_id = ?", taskID).First(&out)
	return &out, res.Error
}

func (r *TaskRepository) List(ctx context.Context, f taskDomain.Filter) ([]taskDomain.Task, error) {
	q := r.db.WithContext(ctx).Model(&taskDomain.Task{})
	if f.AppID != "" {
		q = q.Where("tasks.app_id = ?", f.AppID)
	}
	if f.AssignedTo != "" {
		q = q.Where("tasks.assigned_to = ?", f.AssignedTo)
	}
	if f.VisibleTo != "" {
		q = q.Joins("join loan_applications la on la.app_id = tasks.app_id").
			Joins("join clients c on c.client_id = la.client_id").
			Where("tasks.assigned_to = ? OR c.user_id = ?", f.VisibleTo, f.VisibleTo)
	}
	var out []taskDomain.Task
	res := q.Order("tasks.due_date asc, tasks.id asc").Find(&out)
	return out, res.Error
}

func (r *TaskRepository) DueSoon(ctx context.Context, horizon time.Time) ([]taskDomain.Task, error) {
	var out []taskDomain.Task
	res := r.db.WithContext(ctx).
		Where("status = ? AND due_date IS NOT NULL AND due_date <= ?", taskDomain.StatusOpen, horizon).
		Order("due_date asc, id asc").
		Find(&out)
	return out, res.Error
}

package task

import "time"

type Status string

const (
	StatusOpen Status = "Open"
	StatusDone Status = "Done"
)

type Task struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"-"`
	TaskID     string     `gorm:"size:32;uniqueIndex:ux_tasks_task_id" json:"task_id"`
	AppID      string     `gorm:"size:32;index:idx_tasks_app" json:"application_id"`
	Title      string     `gorm:"size:255" json:"title"`
	Status     Status     `gorm:"size:16" json:"status"`
	AssignedTo string     `gorm:"size:32;index:idx_tasks_assignee" json:"assigned_to,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Task) TableName() string { return "tasks" }

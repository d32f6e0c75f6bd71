package mysql

import (
	"context"
	"testing"
	"time"

	domain "lms-backend/internal/domain/task"
	"lms-backend/pkg/id"
)

func TestTask_ListVisibleTo(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	// application owned by user-owner
	appID := seedApplication(t, db, "user-owner", "user-intern")
	otherApp := seedApplication(t, db, "user-other", "")

	due := time.Now().UTC().AddDate(0, 0, 7)
	seed := []domain.Task{
		{TaskID: id.NewID32(), AppID: appID, Title: "Provide additional information", Status: domain.StatusOpen, DueDate: &due},
		{TaskID: id.NewID32(), AppID: otherApp, Title: "Verify documents", Status: domain.StatusOpen, AssignedTo: "user-owner", DueDate: &due},
		{TaskID: id.NewID32(), AppID: otherApp, Title: "Call applicant", Status: domain.StatusOpen, AssignedTo: "user-intern", DueDate: &due},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	// user-owner sees the task on their own application plus the one assigned
	// to them, never the stranger's task
	got, err := repo.List(ctx, domain.Filter{VisibleTo: "user-owner"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 visible tasks, got %d: %+v", len(got), got)
	}
	for _, tk := range got {
		if tk.Title == "Call applicant" {
			t.Errorf("leaked foreign task: %+v", tk)
		}
	}

	got, err = repo.List(ctx, domain.Filter{AssignedTo: "user-intern"})
	if err != nil {
		t.Fatalf("List by assignee: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Call applicant" {
		t.Fatalf("unexpected assignee tasks: %+v", got)
	}
}

func TestTask_DueSoon(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	appID := id.NewID32()
	now := time.Now().UTC()
	soon := now.AddDate(0, 0, 2)
	far := now.AddDate(0, 0, 30)

	seed := []domain.Task{
		{TaskID: id.NewID32(), AppID: appID, Title: "due soon", Status: domain.StatusOpen, DueDate: &soon},
		{TaskID: id.NewID32(), AppID: appID, Title: "due later", Status: domain.StatusOpen, DueDate: &far},
		{TaskID: id.NewID32(), AppID: appID, Title: "already done", Status: domain.StatusDone, DueDate: &soon},
		{TaskID: id.NewID32(), AppID: appID, Title: "no due date", Status: domain.StatusOpen},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.DueSoon(ctx, now.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("DueSoon: %v", err)
	}
	if len(got) != 1 || got[0].Title != "due soon" {
		t.Fatalf("unexpected due-soon set: %+v", got)
	}
}

func TestTask_SaveStatus(t *testing.T) {
	db := openTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	tk := &domain.Task{TaskID: id.NewID32(), AppID: id.NewID32(), Title: "review", Status: domain.StatusOpen}
	if err := repo.Create(ctx, tk); err != nil {
		t.Fatalf("Create: %v", err)
	}
	tk.Status = domain.StatusDone
	if err := repo.Save(ctx, tk); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.GetByTaskID(ctx, tk.TaskID)
	if err != nil {
		t.Fatalf("GetByTaskID: %v", err)
	}
	if got.Status != domain.StatusDone {
		t.Errorf("status not persisted: %+v", got)
	}
}

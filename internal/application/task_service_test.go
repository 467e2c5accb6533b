package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/planify/internal/domain/entity"
)

func TestTaskCreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "A", "a@example.com")
	p, _ := env.projectService().Create(ctx, a.ID, ProjectInput{Title: "P"})

	task, err := env.taskService().Create(ctx, a.ID, TaskInput{ProjectID: p.ID, Title: "  Write docs "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Title != "Write docs" || task.Status != entity.StatusTodo || task.Priority != entity.PriorityMedium || task.ProjectID != p.ID {
		t.Fatalf("defaults: %+v", task)
	}
}

func TestTaskCreateAuthorizesBeforeValidating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "A", "a@example.com")
	b := env.user(t, "B", "b@example.com")
	p, _ := env.projectService().Create(ctx, a.ID, ProjectInput{Title: "P"})
	svc := env.taskService()

	bad := entity.TaskStatus("finished")
	if _, err := svc.Create(ctx, b.ID, TaskInput{ProjectID: p.ID, Title: "", Status: &bad}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner: want ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Create(ctx, a.ID, TaskInput{ProjectID: "missing", Title: "x"}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("missing project: want ErrProjectNotFound, got %v", err)
	}

	var ve *ValidationError
	if _, err := svc.Create(ctx, a.ID, TaskInput{ProjectID: p.ID, Title: " "}); !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("blank title: %v", err)
	}
	if _, err := svc.Create(ctx, a.ID, TaskInput{ProjectID: p.ID, Title: "x", Status: &bad}); !errors.As(err, &ve) || ve.Field != "status" {
		t.Fatalf("bad status: %v", err)
	}
	badPriority := entity.TaskPriority("urgent")
	if _, err := svc.Create(ctx, a.ID, TaskInput{ProjectID: p.ID, Title: "x", Priority: &badPriority}); !errors.As(err, &ve) || ve.Field != "priority" {
		t.Fatalf("bad priority: %v", err)
	}
	if _, err := svc.Create(ctx, a.ID, TaskInput{ProjectID: p.ID, Title: "x", AssignedTo: "nobody"}); !errors.As(err, &ve) || ve.Field != "assignedTo" {
		t.Fatalf("unknown assignee: %v", err)
	}
}

func TestTaskUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "A", "a@example.com")
	b := env.user(t, "B", "b@example.com")
	p, _ := env.projectService().Create(ctx, a.ID, ProjectInput{Title: "P"})
	svc := env.taskService()

	due := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	task, err := svc.Create(ctx, a.ID, TaskInput{ProjectID: p.ID, Title: "Design", Description: "mockups", EndDate: &due})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, task.ID, b.ID, entity.TaskPatch{Title: ptr("")}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner update: want ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", a.ID, entity.TaskPatch{}); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("missing task: want ErrTaskNotFound, got %v", err)
	}

	done := entity.StatusDone
	var cleared *time.Time
	updated, err := svc.Update(ctx, task.ID, a.ID, entity.TaskPatch{Status: &done, AssignedTo: ptr(b.ID), EndDate: &cleared})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != entity.StatusDone || updated.AssignedTo != b.ID || updated.EndDate != nil {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Title != "Design" || updated.Description != "mockups" || updated.ProjectID != p.ID {
		t.Fatalf("untouched fields changed: %+v", updated)
	}

	if err := svc.Delete(ctx, task.ID, b.ID); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-owner delete: want ErrUnauthorized, got %v", err)
	}
	if err := svc.Delete(ctx, task.ID, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, task.ID, a.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second delete: want ErrTaskNotFound, got %v", err)
	}
}

func TestTaskOfDeletedProjectIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.user(t, "A", "a@example.com")

	orphan := entity.NewTask("gone", "orphan")
	if err := env.tasks.Create(ctx, orphan); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := env.taskService().Update(ctx, orphan.ID, a.ID, entity.TaskPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
)

// openTestDB connects to PLANIFY_TEST_MONGO_URI and hands out a throwaway database.
func openTestDB(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("PLANIFY_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("PLANIFY_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, uri, fmt.Sprintf("planify_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(openTestDB(t))

	u := &entity.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := users.GetByEmail(ctx, "ada@example.com")
	if err != nil || got.ID != u.ID || got.PasswordHash != "hash" {
		t.Fatalf("get by email: %+v %v", got, err)
	}
	if _, err := users.GetByID(ctx, u.ID); err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if err := users.Create(ctx, &entity.User{Name: "Other", Email: "ada@example.com", PasswordHash: "x"}); !errors.Is(err, repo.ErrDuplicate) {
		t.Fatalf("want ErrDuplicate, got %v", err)
	}
	if _, err := users.GetByID(ctx, "not-an-id"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("malformed id: want ErrNotFound, got %v", err)
	}
	if _, err := users.GetByID(ctx, primitive.NewObjectID().Hex()); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("unknown id: want ErrNotFound, got %v", err)
	}
}

func TestProjectRepositoryOrder(t *testing.T) {
	ctx := context.Background()
	projects := NewProjectRepository(openTestDB(t))
	owner, stranger := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	create := func(owner, title string, pinned bool) *entity.Project {
		t.Helper()
		p := entity.NewProject(owner, title)
		p.Pinned = pinned
		if err := projects.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		// timestamps are kept to the millisecond
		time.Sleep(5 * time.Millisecond)
		return p
	}
	site := create(owner, "Site Redesign", false)
	create(owner, "Older", false)
	create(owner, "Pinned", true)
	create(stranger, "Not mine", false)

	site.Description = "updated"
	if err := projects.Update(ctx, site); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := projects.ListByOwner(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Pinned", "Site Redesign", "Older"}
	if len(list) != len(want) {
		t.Fatalf("want %d projects, got %d", len(want), len(list))
	}
	for i, title := range want {
		if list[i].Title != title {
			t.Fatalf("position %d: want %q got %q", i, title, list[i].Title)
		}
	}

	if _, err := projects.GetByID(ctx, "nope"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("malformed id: want ErrNotFound, got %v", err)
	}
	if err := projects.Delete(ctx, site.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := projects.Delete(ctx, site.ID); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}
	if err := projects.Update(ctx, site); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("update of deleted: want ErrNotFound, got %v", err)
	}
}

func TestTaskRepository(t *testing.T) {
	ctx := context.Background()
	tasks := NewTaskRepository(openTestDB(t))
	p1, p2 := primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()

	for _, s := range []entity.TaskStatus{entity.StatusDone, entity.StatusTodo, entity.StatusDoing} {
		task := entity.NewTask(p1, "task "+string(s))
		task.Status = s
		if err := tasks.Create(ctx, task); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	other := entity.NewTask(p2, "elsewhere")
	if err := tasks.Create(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	statuses, err := tasks.StatusesByProjects(ctx, []string{p1, p2, "bogus"})
	if err != nil {
		t.Fatalf("statuses: %v", err)
	}
	if len(statuses[p1]) != 3 || len(statuses[p2]) != 1 || len(statuses["bogus"]) != 0 {
		t.Fatalf("unexpected statuses: %v", statuses)
	}

	n, err := tasks.DeleteByProject(ctx, p1)
	if err != nil || n != 3 {
		t.Fatalf("delete by project: %d %v", n, err)
	}
	if list, _ := tasks.ListByProject(ctx, p1); len(list) != 0 {
		t.Fatalf("tasks survived cascade: %v", list)
	}
	if list, err := tasks.ListByProject(ctx, "bogus"); err != nil || list == nil || len(list) != 0 {
		t.Fatalf("malformed project id must list nothing: %v %v", list, err)
	}
	if _, err := tasks.GetByID(ctx, "bogus"); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("malformed id: want ErrNotFound, got %v", err)
	}
}

package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/planify/internal/domain/entity"
	repo "github.com/oksasatya/planify/internal/domain/repository"
	"github.com/oksasatya/planify/internal/infrastructure/sqlite"
	"github.com/oksasatya/planify/pkg/helpers"
)

func TestMain(m *testing.M) {
	helpers.BcryptCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type testEnv struct {
	users    repo.UserRepository
	projects repo.ProjectRepository
	tasks    repo.TaskRepository
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "planify.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close(db) })
	env := &testEnv{
		users:    sqlite.NewUserRepository(db),
		projects: sqlite.NewProjectRepository(db),
		tasks:    sqlite.NewTaskRepository(db),
	}
	env.auth = NewAuthService(env.users, helpers.NewJWTManager("test-secret", time.Hour, "planify"), nil, helpers.NewNopLogger())
	return env
}

func (e *testEnv) projectService() *ProjectService {
	return NewProjectService(e.projects, e.tasks, nil, helpers.NewNopLogger(), nil, "")
}

func (e *testEnv) taskService() *TaskService {
	return NewTaskService(e.tasks, e.projects, e.users, helpers.NewNopLogger())
}

func (e *testEnv) user(t *testing.T, name, email string) *entity.User {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return u
}

// failingTasks wraps a task repository and fails DeleteByProject.
type failingTasks struct {
	repo.TaskRepository
	err error
}

func (f failingTasks) DeleteByProject(context.Context, string) (int64, error) {
	return 0, f.err
}

type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
	err  error
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

var errBoom = errors.New("boom")

package router

import (
	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/internal/container"
	handlers "github.com/oksasatya/planify/internal/interface/http"
	"github.com/oksasatya/planify/internal/router/modules"
)

type Services struct {
	Auth     *application.AuthService
	Projects *application.ProjectService
	Tasks    *application.TaskService
}

// BuildServices wires the application services from the container singletons.
func BuildServices() Services {
	st := container.GetStore()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	projects := application.NewProjectService(st.Projects, st.Tasks, nil, logger, container.GetES(), cfg.ESProjectsIndex)
	// a nil *RabbitPublisher must not become a non-nil interface
	if pub := container.GetRabbitPub(); pub != nil {
		projects.Cleanup = pub
	}

	return Services{
		Auth:     application.NewAuthService(st.Users, container.GetJWT(), container.GetRedis(), logger),
		Projects: projects,
		Tasks:    application.NewTaskService(st.Tasks, st.Projects, st.Users, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	svc := BuildServices()
	logger := container.GetLogger()
	cfg := container.GetConfig()

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger), svc.Auth, cfg.AuthRateLimit))
	r.Add(modules.NewProjectModule(handlers.NewProjectHandler(svc.Projects, logger), svc.Auth))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(svc.Tasks, logger), svc.Auth))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

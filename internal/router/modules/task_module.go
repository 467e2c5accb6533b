package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planify/internal/container"
	handlers "github.com/oksasatya/planify/internal/interface/http"
	"github.com/oksasatya/planify/internal/interface/middleware"
)

type TaskModule struct {
	Handler *handlers.TaskHandler
	Tokens  middleware.TokenValidator
}

func NewTaskModule(h *handlers.TaskHandler, tokens middleware.TokenValidator) *TaskModule {
	return &TaskModule{Handler: h, Tokens: tokens}
}

func (m *TaskModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/tasks")
	g.Use(middleware.Auth(m.Tokens))
	g.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("/project/:projectId", m.Handler.ListByProject)
		g.POST("", m.Handler.Create)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}

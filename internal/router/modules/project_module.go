package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planify/internal/container"
	handlers "github.com/oksasatya/planify/internal/interface/http"
	"github.com/oksasatya/planify/internal/interface/middleware"
)

type ProjectModule struct {
	Handler *handlers.ProjectHandler
	Tokens  middleware.TokenValidator
}

func NewProjectModule(h *handlers.ProjectHandler, tokens middleware.TokenValidator) *ProjectModule {
	return &ProjectModule{Handler: h, Tokens: tokens}
}

func (m *ProjectModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/projects")
	g.Use(middleware.Auth(m.Tokens))
	g.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), nil))
	{
		g.GET("", m.Handler.List)
		g.GET("/search", m.Handler.Search)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}

package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planify/internal/container"
	"github.com/oksasatya/planify/internal/interface/middleware"
	"github.com/oksasatya/planify/pkg/response"
)

// NewEngine builds the gin engine with global middleware and every module registered.
// The container must hold a store before it is called.
func NewEngine() *gin.Engine {
	cfg := container.GetConfig()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(container.GetLogger()))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	reg := NewRegistry(r, "/api", container.GetLogger())
	InitModules(reg)
	reg.RegisterAll()
	return r
}

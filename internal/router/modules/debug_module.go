package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planify/internal/container"
	"github.com/oksasatya/planify/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar metrics, private networks only, rate-limited per IP
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.GET("/debug/vars", middleware.RequireAllowed(middleware.AllowPrivateIP()), rl, gin.WrapH(expvar.Handler()))
}

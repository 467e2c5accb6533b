package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planify/internal/container"
	handlers "github.com/oksasatya/planify/internal/interface/http"
	"github.com/oksasatya/planify/internal/interface/middleware"
)

// AuthModule serves signup and login publicly, me and logout behind the bearer check.
type AuthModule struct {
	Handler   *handlers.AuthHandler
	Tokens    middleware.TokenValidator
	RateLimit int
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.TokenValidator, rateLimit int) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens, RateLimit: rateLimit}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// per IP and route, so a burst of failed logins does not block signup
	limiter := middleware.RateLimit(container.GetRedis(), m.RateLimit, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", limiter, m.Handler.Signup)
	rg.POST("/auth/login", limiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/logout", m.Handler.Logout)
	}
}

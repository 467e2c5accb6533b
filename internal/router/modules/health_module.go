package modules

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planify/pkg/response"
)

type HealthModule struct{}

func NewHealthModule() *HealthModule { return &HealthModule{} }

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", func(c *gin.Context) {
		response.Message(c, http.StatusOK, "Planify API is running")
	})
}

package router

import "github.com/gin-gonic/gin"

// Module is a feature that mounts its own routes, and their middleware, on the API group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

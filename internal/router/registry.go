package router

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Registry collects modules and mounts them under one path prefix.
type Registry struct {
	Engine     *gin.Engine
	API        *gin.RouterGroup
	Logger     *logrus.Logger
	modules    []Module
	registered bool
}

func NewRegistry(engine *gin.Engine, prefix string, logger *logrus.Logger) *Registry {
	return &Registry{Engine: engine, API: engine.Group(prefix), Logger: logger}
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts every added module. Later calls are no-ops, since gin panics on a
// route registered twice.
func (r *Registry) RegisterAll() {
	if r.registered {
		return
	}
	r.registered = true
	for _, m := range r.modules {
		m.Register(r.API)
		if r.Logger != nil {
			r.Logger.WithField("module", fmt.Sprintf("%T", m)).Debug("module registered")
		}
	}
}

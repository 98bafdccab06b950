package router

import "github.com/gin-gonic/gin"

// Registry collects the feature modules (auth, users, vehicles, appointments,
// debug) and mounts them all under /api. Group middleware added with Use runs
// before every module route; per-route middleware such as OptionalAuth and
// the rate limiters stays inside the modules themselves.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll applies the group middleware and then registers every module
// in the order it was added. Call once, after all Add calls.
func (r *Registry) RegisterAll() {
	r.API.Use(r.middlewares...)
	for _, m := range r.modules {
		m.Register(r.API)
	}
}

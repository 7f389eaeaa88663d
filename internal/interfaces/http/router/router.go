package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adminhub/backend/internal/interfaces/http/dto"
)

// RouteRegistrar is implemented by every handler that mounts routes
// under the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router assembles the API route tree from registered handlers.
type Router struct {
	engine     *gin.Engine
	registrars []RouteRegistrar
	startedAt  time.Time
}

// New creates a Router on top of an already configured gin engine.
// Middleware (request ID, logging, auth) is expected to be attached
// to the engine before Setup is called.
func New(engine *gin.Engine) *Router {
	return &Router{
		engine:    engine,
		startedAt: time.Now(),
	}
}

// Register queues handlers for mounting. Call before Setup.
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts the health endpoint and every registered handler under
// /api/v1 and returns the engine ready to serve.
func (r *Router) Setup() *gin.Engine {
	v1 := r.engine.Group("/api/v1")

	v1.GET("/health", r.health)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(v1)
	}

	r.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.ErrCodeNotFound, "Route not found", ""))
	})

	return r.engine
}

// health reports liveness. It carries no tenant data and must stay on
// the authentication skip list.
func (r *Router) health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status": "ok",
		"uptime": time.Since(r.startedAt).Round(time.Second).String(),
	}))
}

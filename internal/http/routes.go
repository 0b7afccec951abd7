package http

import (
	"time"

	"todo_webapp/internal/config"
	"todo_webapp/internal/http/handlers"
	"todo_webapp/internal/http/middleware"
	"todo_webapp/internal/repository"
	"todo_webapp/internal/service"
	"todo_webapp/internal/ws"
	"todo_webapp/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the long-lived objects the routes are wired to. The caller owns
// their lifecycle.
type Deps struct {
	Store   repository.Store
	Hub     *ws.Hub
	Limiter *middleware.RedisRateLimiter
	Version string
}

// NewEngine builds a gin engine with the standard middleware chain and every
// route registered.
func NewEngine(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	RegisterRoutes(r, cfg, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {
	var notifier service.Notifier
	if deps.Hub != nil {
		notifier = deps.Hub
	}
	h := handlers.NewHandler(service.NewTaskService(deps.Store, notifier))
	healthHandler := handlers.NewHealthHandler(deps.Version, map[string]handlers.Pinger{
		"database": deps.Store,
	})

	r.GET("/", h.Greeting)

	// Health checks and metrics (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	tasks := r.Group("/tasks")
	if cfg.APIRateLimit > 0 {
		tasks.Use(rateLimit(cfg, deps.Limiter))
	}
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
	}

	if deps.Hub != nil {
		r.GET("/ws", ws.HandleWS(deps.Hub, cfg.AllowedOrigin))
	}

	// Browser client
	if cfg.WebDir != "" {
		r.StaticFS("/app", gin.Dir(cfg.WebDir, false))
	} else {
		r.StaticFS("/app", web.FS())
	}
}

func rateLimit(cfg *config.Config, limiter *middleware.RedisRateLimiter) gin.HandlerFunc {
	window := time.Duration(cfg.APIRateWindowSeconds) * time.Second
	if limiter != nil {
		return limiter.Middleware(cfg.APIRateLimit, window)
	}
	return middleware.NewSimpleRateLimiter().Middleware(cfg.APIRateLimit, window)
}

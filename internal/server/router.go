package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sprintsync/sprintsync-api/internal/auth"
	"github.com/sprintsync/sprintsync-api/internal/config"
	apierrors "github.com/sprintsync/sprintsync-api/internal/errors"
	"github.com/sprintsync/sprintsync-api/internal/logger"
	"github.com/sprintsync/sprintsync-api/internal/monitor"
	"github.com/sprintsync/sprintsync-api/internal/storage/pg"
	"github.com/sprintsync/sprintsync-api/internal/suggestion"
	"github.com/sprintsync/sprintsync-api/internal/task"
)

// DatabaseChecker reports database reachability for /health.
type DatabaseChecker interface {
	HealthCheck(ctx context.Context) pg.HealthStatus
}

// Deps holds everything the router needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Database DatabaseChecker
	Memory   *monitor.MemoryMonitor
	Gatherer prometheus.Gatherer
	Metrics  *HTTPMetrics

	AuthMiddleware    *auth.Middleware
	AuthHandler       *auth.Handler
	TaskHandler       *task.Handler
	SuggestionHandler *suggestion.Handler
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config

	router := gin.New()

	router.Use(apierrors.Recovery(deps.Logger, cfg.IsProduction()))
	router.Use(logger.RequestLoggingMiddleware(deps.Logger))
	router.Use(corsMiddleware(cfg.AllowedOrigins()))
	router.Use(bodyLimit(cfg.MaxRequestBodyBytes))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}
	if deps.Memory != nil && !cfg.IsProduction() {
		router.Use(deps.Memory.Middleware())
	}

	health := &healthHandler{
		environment: cfg.AppEnv,
		database:    deps.Database,
		memory:      deps.Memory,
		started:     time.Now(),
	}
	router.GET("/health", health.Health)

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	requireAuth := deps.AuthMiddleware.RequireAuth()

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", deps.AuthHandler.Signup)
		authGroup.POST("/login", deps.AuthHandler.Login)
		authGroup.GET("/me", requireAuth, deps.AuthHandler.Me)
	}

	tasks := router.Group("/tasks", requireAuth)
	deps.TaskHandler.RegisterRoutes(tasks)

	ai := router.Group("/ai", requireAuth)
	{
		ai.POST("/suggest", deps.SuggestionHandler.Suggest)
	}

	router.NoRoute(apierrors.NoRoute)

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:       origins,
		AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:       []string{"Origin", "Content-Type", "Accept", "Authorization", logger.RequestIDHeader},
		ExposedHeaders:       []string{logger.RequestIDHeader},
		OptionsSuccessStatus: http.StatusNoContent,
	})

	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)

		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}

func bodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

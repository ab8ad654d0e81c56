package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/user-management-backend/internal/adapter/handler"
	"github.com/marcos-nsantos/user-management-backend/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/httputil"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Router struct {
	engine      *gin.Engine
	userHandler *handler.UserHandler
	database    Pinger
	logger      *zap.Logger
	corsOrigins []string
}

type RouterConfig struct {
	UserHandler *handler.UserHandler
	Database    Pinger
	Logger      *zap.Logger
	Environment string
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:      engine,
		userHandler: cfg.UserHandler,
		database:    cfg.Database,
		logger:      cfg.Logger,
		corsOrigins: cfg.CORSOrigins,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.Logger(r.logger, "/health", "/ready"))
	r.engine.Use(middleware.CORS(r.corsOrigins))
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.engine.GET("/ready", r.ready)

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("", r.userHandler.Create)
			users.POST("/login", r.userHandler.Login)
			users.GET("", r.userHandler.List)
			users.GET("/:id", r.userHandler.Get)
			users.PUT("/:id", r.userHandler.Update)
			users.DELETE("/:id", r.userHandler.Delete)
		}
	}
}

func (r *Router) ready(c *gin.Context) {
	if r.database == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := r.database.Ping(ctx); err != nil {
		r.logger.Warn("readiness check failed", zap.Error(err))
		httputil.ErrorWithCode(c, http.StatusServiceUnavailable, "NOT_READY", "database unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

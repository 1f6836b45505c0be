package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/matchpointhq/matchpoint-backend/internal/http/handlers"
	httpMW "github.com/matchpointhq/matchpoint-backend/internal/http/middleware"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	ConsentHandler *httpH.ConsentHandler
	SportHandler   *httpH.SportHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("matchpoint"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Public catalog
		if cfg.SportHandler != nil {
			api.GET("/sports", cfg.SportHandler.List)
			api.GET("/sports/popular", cfg.SportHandler.ListPopular)
			api.GET("/levels", cfg.SportHandler.ListLevels)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
			protected.POST("/revoke", cfg.AuthHandler.Revoke)
		}

		// User
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.GET("/users", cfg.UserHandler.ListUsers)
			protected.GET("/users/:id", cfg.UserHandler.GetUser)
			protected.DELETE("/users/:id", cfg.UserHandler.DeleteUser)
		}

		// Consents
		if cfg.ConsentHandler != nil {
			protected.GET("/consents", cfg.ConsentHandler.List)
			protected.POST("/consents", cfg.ConsentHandler.Grant)
			protected.DELETE("/consents/:type", cfg.ConsentHandler.Revoke)
		}

		// Sports
		if cfg.SportHandler != nil {
			protected.POST("/sports", cfg.SportHandler.Create)
			protected.POST("/me/sports", cfg.SportHandler.AddUserSport)
		}
	}

	return r
}

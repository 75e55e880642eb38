package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/server/handlers"
	"github.com/karangnongko/goatherd/internal/session"
)

// New wires the Gin engine with required routes and middlewares.
func New(store *session.Store, authHandler *handlers.AuthHandler, goatHandler *handlers.GoatHandler, feedingHandler *handlers.FeedingHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.POST("/login", authHandler.Login)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authorized := r.Group("/", handlers.RequireSession(store))
	{
		authorized.POST("/logout", authHandler.Logout)
		authorized.GET("/me", authHandler.Me)

		authorized.GET("/goats", goatHandler.List)
		authorized.GET("/goats/stats", goatHandler.Stats)
		authorized.GET("/goats/:id", goatHandler.Get)
		authorized.POST("/goats", goatHandler.Create)
		authorized.PUT("/goats/:id", goatHandler.Update)
		authorized.DELETE("/goats/:id", goatHandler.Delete)

		authorized.GET("/feed-logs", feedingHandler.List)
		authorized.GET("/feed-logs/calendar", feedingHandler.Calendar)
		authorized.POST("/feed-logs", feedingHandler.Create)
		authorized.PUT("/feed-logs/:id", feedingHandler.Update)
		authorized.DELETE("/feed-logs/:id", feedingHandler.Delete)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

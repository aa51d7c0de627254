// internal/infra/httpapi/router.go
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// NewRouter wires the API routes onto a fresh gin engine.
func NewRouter(h *Handler, allowedOrigins []string, logger *logrus.Entry) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(corsMiddleware(allowedOrigins))
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})

		api.POST("/students/notify", h.Notify)
		api.GET("/students/:id/notification-status", h.NotificationStatus)
		api.GET("/students/:id/dispatch-outcomes", h.DispatchOutcomes)
		api.GET("/public/verify", h.VerifyPublicLink)
	}
	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		// preflight already answered by cors
		if ctx.Request.Method == http.MethodOptions && ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func requestLogger(logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	}
}

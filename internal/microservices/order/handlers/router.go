package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"restaurant-system/internal/common/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

func Router(h *Handler, lg *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog(lg))

	r.GET("/menu", h.MenuHandler.ListMenu)

	r.POST("/orders", h.OrderHandler.CreateOrder)
	r.GET("/orders", h.OrderHandler.ListOrders)
	r.GET("/orders/:order_id", h.OrderHandler.GetOrder)
	r.PUT("/orders/:order_id", h.OrderHandler.UpdateOrder)

	r.GET("/analytics/popular-items", h.AnalyticsHandler.PopularItems)
	r.GET("/healthz", h.HealthHandler.Health)
	return r
}

// RequestID reuses the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func AccessLog(lg *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		requestLogger(c, lg).Info("http_request", map[string]any{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
	}
}

func requestLogger(c *gin.Context, lg *logger.Logger) *logger.Logger {
	return lg.WithRequestID(c.GetString(requestIDKey))
}

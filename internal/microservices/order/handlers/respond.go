package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/service"
)

// writeProblem writes a simplified RFC 7807 body and stops the chain.
func writeProblem(c *gin.Context, code int, typ, detail string) {
	c.AbortWithStatusJSON(code, gin.H{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// writeError maps service errors: a missing order is a 404, anything else
// is a 500 carrying the underlying message.
func writeError(c *gin.Context, lg *logger.Logger, action string, err error) {
	if errors.Is(err, service.ErrOrderNotFound) {
		writeProblem(c, http.StatusNotFound, "not_found", "order not found")
		return
	}
	requestLogger(c, lg).Error(action, err, nil)
	writeProblem(c, http.StatusInternalServerError, "db_error", err.Error())
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/service"
)

type AnalyticsHandler struct {
	service service.AnalyticsServiceInterface
	lg      *logger.Logger
}

func NewAnalyticsHandler(s service.AnalyticsServiceInterface, lg *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{service: s, lg: lg}
}

func (ah *AnalyticsHandler) PopularItems(c *gin.Context) {
	items, err := ah.service.PopularItems(c.Request.Context())
	if err != nil {
		writeError(c, ah.lg, "popular_items_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

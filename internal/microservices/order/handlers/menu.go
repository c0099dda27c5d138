package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/service"
)

type MenuHandler struct {
	service service.MenuServiceInterface
	lg      *logger.Logger
}

func NewMenuHandler(s service.MenuServiceInterface, lg *logger.Logger) *MenuHandler {
	return &MenuHandler{service: s, lg: lg}
}

// ListMenu handles GET /menu?category=
func (mh *MenuHandler) ListMenu(c *gin.Context) {
	items, err := mh.service.ListMenu(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, mh.lg, "list_menu_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

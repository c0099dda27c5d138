package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/domain/dto"
	"restaurant-system/internal/microservices/order/service"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

func (oh *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeProblem(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	resp, err := oh.service.CreateOrder(c.Request.Context(), req)
	if err != nil {
		writeError(c, oh.lg, "create_order_failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (oh *OrderHandler) UpdateOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeProblem(c, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}

	if err := oh.service.UpdateOrder(c.Request.Context(), orderID, req); err != nil {
		writeError(c, oh.lg, "update_order_failed", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "status updated"})
}

func (oh *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	resp, err := oh.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		writeError(c, oh.lg, "get_order_failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrders handles GET /orders?status=
func (oh *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := oh.service.ListOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		writeError(c, oh.lg, "list_orders_failed", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func orderIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		writeProblem(c, http.StatusBadRequest, "invalid_order_id", "order_id must be an integer")
		return 0, false
	}
	return id, true
}

package handlers

import (
	"context"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	MenuHandler      *MenuHandler
	OrderHandler     *OrderHandler
	AnalyticsHandler *AnalyticsHandler
	HealthHandler    *HealthHandler
}

func New(s *service.Service, db Pinger, lg *logger.Logger) *Handler {
	return &Handler{
		MenuHandler:      NewMenuHandler(s.MenuService, lg),
		OrderHandler:     NewOrderHandler(s.OrderService, lg),
		AnalyticsHandler: NewAnalyticsHandler(s.AnalyticsService, lg),
		HealthHandler:    NewHealthHandler(db),
	}
}

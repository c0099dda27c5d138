package service

import (
	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/events"
	"restaurant-system/internal/microservices/order/repository"
)

// ErrOrderNotFound is returned by operations addressing a missing order.
var ErrOrderNotFound = repository.ErrOrderNotFound

type Service struct {
	MenuService      MenuServiceInterface
	OrderService     OrderServiceInterface
	AnalyticsService AnalyticsServiceInterface
}

func New(repo *repository.Repository, pub events.Publisher, lg *logger.Logger) *Service {
	return &Service{
		MenuService:      NewMenuService(repo.MenuRepo),
		OrderService:     NewOrderService(repo.OrderRepo, pub, lg),
		AnalyticsService: NewAnalyticsService(repo.AnalyticsRepo),
	}
}

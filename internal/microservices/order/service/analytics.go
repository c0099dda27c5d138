package service

import (
	"context"

	"restaurant-system/internal/microservices/order/domain/dao"
	"restaurant-system/internal/microservices/order/repository"
)

const PopularItemsLimit = 5

type AnalyticsServiceInterface interface {
	PopularItems(ctx context.Context) ([]dao.PopularItem, error)
}

type AnalyticsService struct {
	db repository.AnalyticsRepositoryInterface
}

func NewAnalyticsService(db repository.AnalyticsRepositoryInterface) AnalyticsServiceInterface {
	return &AnalyticsService{db: db}
}

func (as *AnalyticsService) PopularItems(ctx context.Context) ([]dao.PopularItem, error) {
	return as.db.PopularItems(ctx, PopularItemsLimit)
}

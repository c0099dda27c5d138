package service

import (
	"context"

	"restaurant-system/internal/microservices/order/domain/dao"
	"restaurant-system/internal/microservices/order/repository"
)

type MenuServiceInterface interface {
	ListMenu(ctx context.Context, category string) ([]dao.MenuItem, error)
}

type MenuService struct {
	db repository.MenuRepositoryInterface
}

func NewMenuService(db repository.MenuRepositoryInterface) MenuServiceInterface {
	return &MenuService{db: db}
}

func (ms *MenuService) ListMenu(ctx context.Context, category string) ([]dao.MenuItem, error) {
	return ms.db.ListMenu(ctx, category)
}

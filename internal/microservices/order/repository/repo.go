package repository

import (
	"context"
	"database/sql"
	"errors"
)

var ErrOrderNotFound = errors.New("order not found")

type Repository struct {
	MenuRepo      MenuRepositoryInterface
	OrderRepo     OrderRepositoryInterface
	AnalyticsRepo AnalyticsRepositoryInterface

	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{
		MenuRepo:      NewMenuRepository(db),
		OrderRepo:     NewOrderRepository(db),
		AnalyticsRepo: NewAnalyticsRepository(db),
		db:            db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

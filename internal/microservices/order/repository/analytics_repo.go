package repository

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-system/internal/microservices/order/domain/dao"
)

type AnalyticsRepositoryInterface interface {
	PopularItems(ctx context.Context, limit int) ([]dao.PopularItem, error)
}

type AnalyticsRepository struct {
	db *sql.DB
}

func NewAnalyticsRepository(db *sql.DB) AnalyticsRepositoryInterface {
	return &AnalyticsRepository{db: db}
}

// PopularItems sums sold quantity per (name, category), best sellers first.
func (ar *AnalyticsRepository) PopularItems(ctx context.Context, limit int) ([]dao.PopularItem, error) {
	rows, err := ar.db.QueryContext(ctx, `
		SELECT m.name, m.category, SUM(o.quantity) AS total_quantity
		FROM OrderItems o
		JOIN MenuItems m ON o.item_id = m.item_id
		GROUP BY m.name, m.category
		ORDER BY total_quantity DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular items: %w", err)
	}
	defer rows.Close()

	out := make([]dao.PopularItem, 0, limit)
	for rows.Next() {
		var p dao.PopularItem
		if err := rows.Scan(&p.Name, &p.Category, &p.TotalQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan popular item: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

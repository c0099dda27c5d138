package repository

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-system/internal/microservices/order/domain/dao"
)

type MenuRepositoryInterface interface {
	ListMenu(ctx context.Context, category string) ([]dao.MenuItem, error)
}

type MenuRepository struct {
	db *sql.DB
}

func NewMenuRepository(db *sql.DB) MenuRepositoryInterface {
	return &MenuRepository{db: db}
}

// ListMenu returns the whole menu, or one category when category is set.
func (mr *MenuRepository) ListMenu(ctx context.Context, category string) ([]dao.MenuItem, error) {
	query := `SELECT item_id, name, category, price FROM MenuItems`
	var args []any
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY item_id`

	rows, err := mr.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu: %w", err)
	}
	defer rows.Close()

	items := make([]dao.MenuItem, 0)
	for rows.Next() {
		var m dao.MenuItem
		if err := rows.Scan(&m.ItemID, &m.Name, &m.Category, &m.Price); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

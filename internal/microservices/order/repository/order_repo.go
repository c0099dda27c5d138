package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"restaurant-system/internal/microservices/order/domain/dao"
)

type OrderRepositoryInterface interface {
	AddOrder(ctx context.Context, order dao.Order, items []dao.OrderItem) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status string, staffID *int64) error
	GetOrder(ctx context.Context, orderID int64) (dao.Order, error)
	GetOrderItems(ctx context.Context, orderID int64) ([]dao.OrderItemDetail, error)
	ListOrders(ctx context.Context, status string) ([]dao.Order, error)
}

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

// AddOrder stores the order and its lines in one transaction and returns
// the generated order_id. The OrderID of items is ignored.
func (or *OrderRepository) AddOrder(ctx context.Context, order dao.Order, items []dao.OrderItem) (int64, error) {
	tx, err := or.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO Orders (customer_id, order_time, status)
		VALUES ($1, $2, $3)
		RETURNING order_id
	`, order.CustomerID, order.OrderTime, order.Status).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO OrderItems (order_id, item_id, quantity, notes)
			VALUES ($1, $2, $3, $4)
		`, orderID, item.ItemID, item.Quantity, item.Notes)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order item %d: %w", item.ItemID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return orderID, nil
}

// UpdateStatus overwrites status and staff_id; a nil staffID stores NULL.
func (or *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status string, staffID *int64) error {
	tx, err := or.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE Orders SET status = $1, staff_id = $2
		WHERE order_id = $3
	`, status, staffID, orderID)
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (or *OrderRepository) GetOrder(ctx context.Context, orderID int64) (dao.Order, error) {
	var o dao.Order
	err := or.db.QueryRowContext(ctx, `
		SELECT order_id, customer_id, order_time, status, staff_id
		FROM Orders WHERE order_id = $1
	`, orderID).Scan(&o.OrderID, &o.CustomerID, &o.OrderTime, &o.Status, &o.StaffID)
	if errors.Is(err, sql.ErrNoRows) {
		return dao.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return dao.Order{}, fmt.Errorf("failed to get order %d: %w", orderID, err)
	}
	return o, nil
}

// GetOrderItems returns the lines of an order with menu name and price.
func (or *OrderRepository) GetOrderItems(ctx context.Context, orderID int64) ([]dao.OrderItemDetail, error) {
	rows, err := or.db.QueryContext(ctx, `
		SELECT oi.order_id, oi.item_id, oi.quantity, oi.notes, mi.name, mi.price
		FROM OrderItems oi
		JOIN MenuItems mi ON oi.item_id = mi.item_id
		WHERE oi.order_id = $1
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items of order %d: %w", orderID, err)
	}
	defer rows.Close()

	items := make([]dao.OrderItemDetail, 0)
	for rows.Next() {
		var d dao.OrderItemDetail
		if err := rows.Scan(&d.OrderID, &d.ItemID, &d.Quantity, &d.Notes, &d.Name, &d.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (or *OrderRepository) ListOrders(ctx context.Context, status string) ([]dao.Order, error) {
	query := `SELECT order_id, customer_id, order_time, status, staff_id FROM Orders`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY order_id`

	rows, err := or.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]dao.Order, 0)
	for rows.Next() {
		var o dao.Order
		if err := rows.Scan(&o.OrderID, &o.CustomerID, &o.OrderTime, &o.Status, &o.StaffID); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

package dao

import (
	"time"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ItemID   int64           `json:"item_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type Order struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	OrderTime  time.Time `json:"order_time"`
	Status     string    `json:"status"`
	StaffID    *int64    `json:"staff_id"`
}

type OrderItem struct {
	OrderID  int64   `json:"order_id"`
	ItemID   int64   `json:"item_id"`
	Quantity int     `json:"quantity"`
	Notes    *string `json:"notes"`
}

// OrderItemDetail is an order line joined with its menu item.
type OrderItemDetail struct {
	OrderItem
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type PopularItem struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	TotalQuantity int64  `json:"total_quantity"`
}

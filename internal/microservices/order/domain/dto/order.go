package dto

import "restaurant-system/internal/microservices/order/domain/dao"

// Required scalars are pointers so that binding checks presence only;
// explicit zero values such as customer_id 0 or status "" pass.
type CreateOrderRequest struct {
	CustomerID *int64           `json:"customer_id" binding:"required"`
	Items      []OrderItemInput `json:"items" binding:"required,dive"`
}

type OrderItemInput struct {
	ItemID   *int64  `json:"item_id" binding:"required"`
	Quantity *int    `json:"quantity" binding:"required"`
	Notes    *string `json:"notes"`
}

type CreateOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type UpdateOrderRequest struct {
	Status  *string `json:"status" binding:"required"`
	StaffID *int64  `json:"staff_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type OrderDetailResponse struct {
	Order dao.Order             `json:"order"`
	Items []dao.OrderItemDetail `json:"items"`
}

// ToOrderItems maps request lines onto item rows. The order id is
// assigned by the repository on insert.
func ToOrderItems(inputs []OrderItemInput) []dao.OrderItem {
	items := make([]dao.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, dao.OrderItem{
			ItemID:   deref(in.ItemID),
			Quantity: deref(in.Quantity),
			Notes:    in.Notes,
		})
	}
	return items
}

// CustomerIDValue returns the bound customer id, zero when absent.
func (r CreateOrderRequest) CustomerIDValue() int64 { return deref(r.CustomerID) }

// StatusValue returns the bound status, empty when absent.
func (r UpdateOrderRequest) StatusValue() string { return deref(r.Status) }

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

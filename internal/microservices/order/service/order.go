package service

import (
	"context"
	"fmt"
	"time"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/domain/dao"
	"restaurant-system/internal/microservices/order/domain/dto"
	"restaurant-system/internal/microservices/order/events"
	"restaurant-system/internal/microservices/order/repository"
)

// StatusInProgress is the status of every newly created order.
const StatusInProgress = "in progress"

const publishTimeout = 5 * time.Second

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error)
	UpdateOrder(ctx context.Context, orderID int64, req dto.UpdateOrderRequest) error
	GetOrder(ctx context.Context, orderID int64) (dto.OrderDetailResponse, error)
	ListOrders(ctx context.Context, status string) ([]dao.Order, error)
}

type OrderService struct {
	db  repository.OrderRepositoryInterface
	pub events.Publisher
	lg  *logger.Logger
	now func() time.Time
}

func NewOrderService(db repository.OrderRepositoryInterface, pub events.Publisher, lg *logger.Logger) OrderServiceInterface {
	if pub == nil {
		pub = events.NopPublisher{}
	}
	return &OrderService{db: db, pub: pub, lg: lg, now: time.Now}
}

func (or *OrderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.CreateOrderResponse, error) {
	customerID := req.CustomerIDValue()
	order := dao.Order{
		CustomerID: customerID,
		OrderTime:  or.now().UTC(),
		Status:     StatusInProgress,
	}
	orderID, err := or.db.AddOrder(ctx, order, dto.ToOrderItems(req.Items))
	if err != nil {
		return dto.CreateOrderResponse{}, fmt.Errorf("failed to create order: %w", err)
	}
	or.lg.Info("order_created", map[string]any{
		"order_id": orderID, "customer_id": customerID, "items": len(req.Items),
	})

	or.publish(events.OrderEvent{
		EventType:  events.TypeOrderCreated,
		OrderID:    orderID,
		CustomerID: customerID,
		Status:     StatusInProgress,
		ItemCount:  len(req.Items),
		OccurredAt: order.OrderTime,
	})
	return dto.CreateOrderResponse{OrderID: orderID}, nil
}

func (or *OrderService) UpdateOrder(ctx context.Context, orderID int64, req dto.UpdateOrderRequest) error {
	status := req.StatusValue()
	if err := or.db.UpdateStatus(ctx, orderID, status, req.StaffID); err != nil {
		return fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	or.lg.Info("order_status_updated", map[string]any{
		"order_id": orderID, "status": status, "staff_id": req.StaffID,
	})

	or.publish(events.OrderEvent{
		EventType:  events.TypeOrderStatusChanged,
		OrderID:    orderID,
		Status:     status,
		StaffID:    req.StaffID,
		OccurredAt: or.now().UTC(),
	})
	return nil
}

func (or *OrderService) GetOrder(ctx context.Context, orderID int64) (dto.OrderDetailResponse, error) {
	order, err := or.db.GetOrder(ctx, orderID)
	if err != nil {
		return dto.OrderDetailResponse{}, err
	}
	items, err := or.db.GetOrderItems(ctx, orderID)
	if err != nil {
		return dto.OrderDetailResponse{}, err
	}
	return dto.OrderDetailResponse{Order: order, Items: items}, nil
}

func (or *OrderService) ListOrders(ctx context.Context, status string) ([]dao.Order, error) {
	return or.db.ListOrders(ctx, status)
}

// publish runs after commit; a broker failure is logged and the request
// still succeeds.
func (or *OrderService) publish(ev events.OrderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := or.pub.Publish(ctx, ev); err != nil {
		or.lg.Error("event_publish_failed", err, map[string]any{
			"order_id": ev.OrderID, "event_type": ev.EventType,
		})
	}
}

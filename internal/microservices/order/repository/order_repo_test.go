package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-system/internal/microservices/order/domain/dao"
)

var orderColumns = []string{"order_id", "customer_id", "order_time", "status", "staff_id"}

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create mock DB")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func strPtr(s string) *string { return &s }
func int64Ptr(n int64) *int64 { return &n }

func TestAddOrder_InsertsOrderAndItemsInOneTransaction(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO Orders (customer_id, order_time, status)")).
		WithArgs(int64(1), now, "in progress").
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO OrderItems (order_id, item_id, quantity, notes)")).
		WithArgs(int64(42), int64(5), 2, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO OrderItems (order_id, item_id, quantity, notes)")).
		WithArgs(int64(42), int64(7), 1, "no onions").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := repo.AddOrder(context.Background(),
		dao.Order{CustomerID: 1, OrderTime: now, Status: "in progress"},
		[]dao.OrderItem{
			{ItemID: 5, Quantity: 2},
			{ItemID: 7, Quantity: 1, Notes: strPtr("no onions")},
		})

	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestAddOrder_ItemFailureRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO Orders")).
		WillReturnRows(sqlmock.NewRows([]string{"order_id"}).AddRow(int64(42)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO OrderItems")).
		WillReturnError(errors.New("violates foreign key constraint"))
	mock.ExpectRollback()

	id, err := repo.AddOrder(context.Background(),
		dao.Order{CustomerID: 1, OrderTime: time.Now(), Status: "in progress"},
		[]dao.OrderItem{{ItemID: 999, Quantity: 1}})

	assert.Zero(t, id)
	assert.ErrorContains(t, err, "failed to insert order item 999")
	assert.ErrorContains(t, err, "violates foreign key constraint")
}

func TestAddOrder_OrderInsertFailureRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO Orders")).
		WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	_, err := repo.AddOrder(context.Background(), dao.Order{CustomerID: 1}, []dao.OrderItem{{ItemID: 1, Quantity: 1}})
	assert.ErrorContains(t, err, "failed to insert order")
}

func TestAddOrder_BeginFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, err := repo.AddOrder(context.Background(), dao.Order{}, nil)
	assert.ErrorContains(t, err, "failed to begin transaction")
}

func TestUpdateStatus_Commits(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Orders SET status = $1, staff_id = $2")).
		WithArgs("ready", int64(3), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.UpdateStatus(context.Background(), 42, "ready", int64Ptr(3)))
}

func TestUpdateStatus_NilStaffStoresNull(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Orders")).
		WithArgs("served", nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.UpdateStatus(context.Background(), 42, "served", nil))
}

func TestUpdateStatus_NotFoundRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Orders")).
		WithArgs("ready", nil, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), 404, "ready", nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateStatus_ExecFailureRollsBack(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE Orders")).
		WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	err := repo.UpdateStatus(context.Background(), 1, "ready", nil)
	assert.ErrorContains(t, err, "deadlock detected")
	assert.NotErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrder(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM Orders WHERE order_id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow(int64(42), int64(1), at, "in progress", nil))

	o, err := repo.GetOrder(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, dao.Order{OrderID: 42, CustomerID: 1, OrderTime: at, Status: "in progress"}, o)
}

func TestGetOrder_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM Orders WHERE order_id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(orderColumns))

	_, err := repo.GetOrder(context.Background(), 7)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrderItems_EnrichedWithMenu(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN MenuItems mi ON oi.item_id = mi.item_id")).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "item_id", "quantity", "notes", "name", "price"}).
			AddRow(int64(42), int64(5), int64(2), nil, "Ramen", "9.50").
			AddRow(int64(42), int64(7), int64(1), "extra spicy", "Gyoza", "4.25"))

	items, err := repo.GetOrderItems(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(5), items[0].ItemID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Nil(t, items[0].Notes)
	assert.Equal(t, "Ramen", items[0].Name)
	assert.True(t, decimal.RequireFromString("9.50").Equal(items[0].Price))

	require.NotNil(t, items[1].Notes)
	assert.Equal(t, "extra spicy", *items[1].Notes)
}

func TestGetOrderItems_EmptyIsNotNil(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM OrderItems oi")).
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "item_id", "quantity", "notes", "name", "price"}))

	items, err := repo.GetOrderItems(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestListOrders_FilterByStatus(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM Orders WHERE status = $1")).
		WithArgs("in progress").
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(int64(1), int64(10), at, "in progress", int64(3)))

	orders, err := repo.ListOrders(context.Background(), "in progress")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].StaffID)
	assert.Equal(t, int64(3), *orders[0].StaffID)
}

func TestListOrders_NoFilter(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)
	at := time.Now().UTC()

	mock.ExpectQuery(`SELECT order_id, customer_id, order_time, status, staff_id FROM Orders ORDER BY order_id`).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows(orderColumns).
			AddRow(int64(1), int64(10), at, "in progress", nil).
			AddRow(int64(2), int64(11), at, "served", int64(4)))

	orders, err := repo.ListOrders(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestListOrders_QueryFailure(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM Orders")).WillReturnError(errors.New("connection reset"))

	_, err := repo.ListOrders(context.Background(), "")
	assert.ErrorContains(t, err, "failed to list orders")
}

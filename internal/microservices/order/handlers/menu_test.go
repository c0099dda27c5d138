package handlers

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-system/internal/common/logger"
	"restaurant-system/internal/microservices/order/domain/dao"
	"restaurant-system/internal/microservices/order/service"
)

func TestListMenu(t *testing.T) {
	f := newFixture(t)
	f.menu.items = []dao.MenuItem{
		{ItemID: 3, Name: "Green tea", Category: "drinks", Price: decimal.RequireFromString("2.00")},
	}

	w := f.do(http.MethodGet, "/menu?category=drinks", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "drinks", f.menu.category)
	assert.JSONEq(t, `[{"item_id":3,"name":"Green tea","category":"drinks","price":"2"}]`, w.Body.String())
}

func TestListMenu_NoCategory(t *testing.T) {
	f := newFixture(t)
	f.menu.items = []dao.MenuItem{}

	w := f.do(http.MethodGet, "/menu", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, f.menu.category)
}

func TestListMenu_DBFailure(t *testing.T) {
	f := newFixture(t)
	f.menu.err = errors.New("failed to query menu: connection refused")

	w := f.do(http.MethodGet, "/menu", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestPopularItems(t *testing.T) {
	f := newFixture(t)
	f.analytics.items = []dao.PopularItem{
		{Name: "Ramen", Category: "noodles", TotalQuantity: 12},
		{Name: "Gyoza", Category: "sides", TotalQuantity: 7},
	}

	w := f.do(http.MethodGet, "/analytics/popular-items", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"name":"Ramen","category":"noodles","total_quantity":12},
		{"name":"Gyoza","category":"sides","total_quantity":7}
	]`, w.Body.String())
}

func TestPopularItems_DBFailure(t *testing.T) {
	f := newFixture(t)
	f.analytics.err = errors.New("timeout")

	w := f.do(http.MethodGet, "/analytics/popular-items", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealth_DBDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lg := logger.NewWithWriter("test", io.Discard)
	svc := &service.Service{MenuService: &fakeMenu{}, OrderService: &fakeOrders{}, AnalyticsService: &fakeAnalytics{}}
	f := &fixture{router: Router(New(svc, fakePinger{err: errors.New("connection refused")}, lg), lg)}

	w := f.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

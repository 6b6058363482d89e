package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrend(t *testing.T) {
	tests := []struct {
		name      string
		cur, prev int64
		want      float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 200, -75},
		{"no previous with activity", 7, 0, 100},
		{"no activity at all", 0, 0, 0},
		{"rounded to one decimal", 2, 3, -33.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTrend(decimal.NewFromInt(tt.cur), decimal.NewFromInt(tt.prev))
			assert.Equal(t, tt.want, got.Percent)
			assert.Equal(t, float64(tt.cur), got.Current)
			assert.Equal(t, float64(tt.prev), got.Previous)
		})
	}
}

func TestLowStockAlerts(t *testing.T) {
	products := []model.Product{
		{Name: "Lawn", SKU: "TX-000001", MinStock: 20, Variants: []model.ProductVariant{
			{Color: "Red", Stock: 5},
			{Color: "Blue", Stock: 20},
			{Color: "Gold", Stock: 0},
		}},
		{Name: "Silk", Variants: []model.ProductVariant{{Color: "Red", Stock: 0}}},
	}

	alerts := LowStockAlerts(products)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Red", alerts[0].Color)
	assert.Equal(t, 5.0, alerts[0].Stock)
	assert.Equal(t, 20.0, alerts[0].MinStock)
	assert.Equal(t, "Gold", alerts[1].Color)

	assert.NotNil(t, LowStockAlerts(nil))
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	products := testutil.NewProductRepo()
	customers := testutil.NewCustomerRepo()
	orders := testutil.NewOrderRepo()
	stocks := testutil.NewStockRepo()

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	march := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	february := time.Date(2026, time.February, 20, 9, 0, 0, 0, time.UTC)
	january := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)

	for i, created := range []time.Time{march, march, march, february, february, january} {
		c := &model.Customer{Name: string(rune('A' + i)), City: "Lahore", Type: model.CustomerTypeRetail}
		c.Touch(created)
		require.NoError(t, customers.Create(ctx, c))
	}

	for _, o := range []struct {
		date   time.Time
		amount float64
	}{
		{march, 100}, {march, 200}, {february, 150}, {january, 50},
	} {
		ord := &model.Order{
			Customer:  "A",
			Status:    model.OrderStatusPending,
			OrderDate: o.date,
			Items:     []model.OrderItem{{Product: "Lawn", Quantity: 1, Price: o.amount}},
		}
		ord.Touch(o.date)
		require.NoError(t, orders.Create(ctx, ord))
	}

	p := &model.Product{Name: "Lawn", MinStock: 10, Variants: []model.ProductVariant{{Color: "Red", Stock: 3}}}
	p.Touch(now)
	p.SKU = model.SKUFromID(p.ID)
	require.NoError(t, products.Create(ctx, p))

	s := &model.Stock{ProductName: "Lawn", Type: model.StockTypeGray, Variants: []model.StockVariant{{Color: "Red", Quantity: 3}}}
	s.Touch(now)
	s.RecomputeStatus()
	require.NoError(t, stocks.Create(ctx, s))

	uc := NewDashboardUseCase(products, customers, orders, stocks, nil, logger.NewNop()).(*dashboardUseCase)
	uc.now = func() time.Time { return now }

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Totals.Products)
	assert.Equal(t, int64(6), stats.Totals.Customers)
	assert.Equal(t, int64(4), stats.Totals.Orders)
	assert.Equal(t, int64(1), stats.Totals.Stocks)
	assert.Equal(t, 500.0, stats.Totals.Revenue)

	assert.Equal(t, 100.0, stats.Trends.Orders.Percent)
	assert.Equal(t, 100.0, stats.Trends.Revenue.Percent)
	assert.Equal(t, 300.0, stats.Trends.Revenue.Current)
	assert.Equal(t, 50.0, stats.Trends.Customers.Percent)

	require.Len(t, stats.LowStockAlerts, 1)
	assert.Equal(t, p.SKU, stats.LowStockAlerts[0].SKU)
	assert.Len(t, stats.LatestOrders, 4)
	assert.True(t, stats.LatestOrders[0].OrderDate.Equal(march))
	assert.Equal(t, now, stats.GeneratedAt)
}

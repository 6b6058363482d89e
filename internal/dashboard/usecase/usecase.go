package usecase

import (
	"context"
	"time"

	"github.com/fekuna/textile-erp-service/internal/customer"
	customerdto "github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/dashboard"
	"github.com/fekuna/textile-erp-service/internal/dashboard/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/order"
	orderdto "github.com/fekuna/textile-erp-service/internal/order/dto"
	"github.com/fekuna/textile-erp-service/internal/product"
	productdto "github.com/fekuna/textile-erp-service/internal/product/dto"
	"github.com/fekuna/textile-erp-service/internal/stock"
	stockdto "github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/pkg/cache"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
	latestLimit   = 5
)

type dashboardUseCase struct {
	products  product.Repository
	customers customer.Repository
	orders    order.Repository
	stocks    stock.Repository
	cache     *cache.RedisClient
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewDashboardUseCase(
	products product.Repository,
	customers customer.Repository,
	orders order.Repository,
	stocks stock.Repository,
	cache *cache.RedisClient,
	log logger.ZapLogger,
) dashboard.UseCase {
	return &dashboardUseCase{
		products:  products,
		customers: customers,
		orders:    orders,
		stocks:    stocks,
		cache:     cache,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *dashboardUseCase) Stats(ctx context.Context) (*dto.Stats, error) {
	var cached dto.Stats
	hit, err := uc.cache.GetJSON(ctx, statsCacheKey, &cached)
	if err != nil {
		uc.logger.Warn("dashboard cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	stats, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetJSON(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
		uc.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
	return stats, nil
}

func (uc *dashboardUseCase) compute(ctx context.Context) (*dto.Stats, error) {
	now := uc.now()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)
	nextMonth := thisMonth.AddDate(0, 1, 0)

	products, _, err := uc.products.FindAll(ctx, &productdto.ProductFilters{SortBy: "createdAt", SortOrder: "desc"})
	if err != nil {
		return nil, err
	}
	orders, _, err := uc.orders.FindAll(ctx, &orderdto.OrderFilters{})
	if err != nil {
		return nil, err
	}
	_, customerCount, err := uc.customers.FindAll(ctx, &customerdto.CustomerFilters{Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}
	_, stockCount, err := uc.stocks.FindAll(ctx, &stockdto.StockFilters{Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}
	_, newCustomers, err := uc.customers.FindAll(ctx, &customerdto.CustomerFilters{CreatedFrom: &thisMonth, CreatedTo: &nextMonth, Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}
	_, prevCustomers, err := uc.customers.FindAll(ctx, &customerdto.CustomerFilters{CreatedFrom: &lastMonth, CreatedTo: &thisMonth, Page: 1, PageSize: 1})
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	curRevenue, prevRevenue := decimal.Zero, decimal.Zero
	var curOrders, prevOrders int
	for i := range orders {
		amount := orders[i].TotalAmount()
		revenue = revenue.Add(amount)

		d := orders[i].OrderDate
		switch {
		case !d.Before(thisMonth) && d.Before(nextMonth):
			curOrders++
			curRevenue = curRevenue.Add(amount)
		case !d.Before(lastMonth) && d.Before(thisMonth):
			prevOrders++
			prevRevenue = prevRevenue.Add(amount)
		}
	}

	stats := &dto.Stats{
		Totals: dto.Totals{
			Products:  int64(len(products)),
			Customers: customerCount,
			Orders:    int64(len(orders)),
			Stocks:    stockCount,
			Revenue:   revenue.InexactFloat64(),
		},
		Trends: dto.Trends{
			Orders:    NewTrend(decimal.NewFromInt(int64(curOrders)), decimal.NewFromInt(int64(prevOrders))),
			Revenue:   NewTrend(curRevenue, prevRevenue),
			Customers: NewTrend(decimal.NewFromInt(newCustomers), decimal.NewFromInt(prevCustomers)),
		},
		LowStockAlerts: LowStockAlerts(products),
		LatestOrders:   head(orders, latestLimit),
		LatestProducts: head(products, latestLimit),
		GeneratedAt:    now,
	}
	return stats, nil
}

// NewTrend computes the month-over-month change in percent, rounded to one
// decimal. With no previous value the change is 100 when anything happened
// this month and 0 otherwise.
func NewTrend(cur, prev decimal.Decimal) dto.Trend {
	var pct decimal.Decimal
	switch {
	case prev.IsZero() && cur.IsPositive():
		pct = decimal.NewFromInt(100)
	case prev.IsZero():
		pct = decimal.Zero
	default:
		pct = cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return dto.Trend{
		Current:  cur.InexactFloat64(),
		Previous: prev.InexactFloat64(),
		Percent:  pct.InexactFloat64(),
	}
}

// LowStockAlerts lists every variant whose stock is below its product's
// minimum. Products without a minimum never alert.
func LowStockAlerts(products []model.Product) []dto.LowStockAlert {
	alerts := []dto.LowStockAlert{}
	for _, p := range products {
		if p.MinStock <= 0 {
			continue
		}
		for _, v := range p.Variants {
			if v.Stock < p.MinStock {
				alerts = append(alerts, dto.LowStockAlert{
					ProductID: p.ID.Hex(),
					Product:   p.Name,
					SKU:       p.SKU,
					Color:     v.Color,
					Stock:     v.Stock,
					MinStock:  p.MinStock,
				})
			}
		}
	}
	return alerts
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

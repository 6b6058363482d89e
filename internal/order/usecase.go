package order

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/order/dto"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	CreateOrder(ctx context.Context, input *dto.OrderInput) (*model.Order, error)
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int64, error)
	UpdateOrder(ctx context.Context, id string, input *dto.OrderInput) (*model.Order, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Order, error)
	DeleteOrder(ctx context.Context, id string) error

	// Aggregates
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	DeliveredCount(ctx context.Context) (int64, error)
	MonthlySales(ctx context.Context, year int) ([]dto.MonthlySales, error)
}

// Broadcaster pushes order changes to live subscribers.
type Broadcaster interface {
	Broadcast(event string, payload any)
}

package stock

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/stock/dto"
)

type UseCase interface {
	CreateStock(ctx context.Context, input *dto.StockInput) (*model.Stock, error)
	GetStock(ctx context.Context, id string) (*model.Stock, error)
	ListStocks(ctx context.Context, filters *dto.StockFilters) ([]model.Stock, int64, error)
	UpdateStock(ctx context.Context, id string, input *dto.StockInput) (*model.Stock, error)
	DeleteStock(ctx context.Context, id string) error

	// Aggregates
	Summary(ctx context.Context) (*dto.Summary, error)
	CategoryBreakdown(ctx context.Context) ([]dto.CategoryBreakdown, error)
	MovementReport(ctx context.Context, filters *dto.MovementReportFilters) ([]model.MovementBucket, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]model.Stock, int64, error)
}

// EnteredLowStock reports a transition from a healthy status into low or out.
func EnteredLowStock(prev, next string) bool {
	isLow := func(s string) bool {
		return s == model.StockStatusLow || s == model.StockStatusOut
	}
	return !isLow(prev) && isLow(next)
}

package product

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/product/dto"
	"github.com/tealeg/xlsx"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListNames(ctx context.Context) ([]dto.ProductName, error)
	TopProducts(ctx context.Context, limit int) ([]dto.TopProduct, error)
	RecentOrders(ctx context.Context, id string, limit int) ([]model.Order, error)

	// Repair ops
	RepairOrderItems(ctx context.Context, id, oldName string) (*dto.RepairResult, error)
	ReconcileStock(ctx context.Context, id string) ([]dto.StockReconciliation, error)

	ExportExcel(ctx context.Context) (*xlsx.File, error)
}

package stock

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/stock/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, stock *model.Stock) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Stock, error)
	FindAll(ctx context.Context, filters *dto.StockFilters) ([]model.Stock, int64, error)
	Update(ctx context.Context, stock *model.Stock) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Package returns manages customer returns against existing orders.
package returns

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/returns/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, ret *model.Return) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Return, error)
	FindAll(ctx context.Context, filters *dto.ReturnFilters) ([]model.Return, int64, error)
	Update(ctx context.Context, ret *model.Return) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

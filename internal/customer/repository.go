package customer

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
	// FindByName matches the whole name case-insensitively.
	FindByName(ctx context.Context, name string) (*model.Customer, error)
	FindAll(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int64, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

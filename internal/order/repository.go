package order

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/order/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int64, error)
	Update(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// RenameProductItems points line items named oldName, or already linked
	// to productID, at newName and productID. It returns the number of
	// modified orders.
	RenameProductItems(ctx context.Context, productID primitive.ObjectID, oldName, newName string) (int64, error)
}

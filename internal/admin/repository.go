package admin

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/admin/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Admin, error)
	FindAll(ctx context.Context, filters *dto.AdminFilters) ([]model.Admin, int64, error)
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

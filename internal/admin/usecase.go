package admin

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/admin/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
)

type UseCase interface {
	CreateAdmin(ctx context.Context, input *dto.AdminInput) (*model.Admin, error)
	GetAdmin(ctx context.Context, id string) (*model.Admin, error)
	ListAdmins(ctx context.Context, filters *dto.AdminFilters) ([]model.Admin, int64, error)
	UpdateAdmin(ctx context.Context, id string, input *dto.AdminInput) (*model.Admin, error)
	DeleteAdmin(ctx context.Context, id string) error
}

package customer

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
)

type UseCase interface {
	CreateCustomer(ctx context.Context, input *dto.CustomerInput) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context, filters *dto.CustomerFilters) ([]model.Customer, int64, error)
	UpdateCustomer(ctx context.Context, id string, input *dto.CustomerInput) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	TopCustomers(ctx context.Context, limit int) ([]dto.TopCustomer, error)
	Cities() []string
}

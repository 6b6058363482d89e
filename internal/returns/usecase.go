package returns

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/returns/dto"
)

type UseCase interface {
	CreateReturn(ctx context.Context, input *dto.CreateReturnInput) (*model.Return, error)
	GetReturn(ctx context.Context, id string) (*model.Return, error)
	ListReturns(ctx context.Context, filters *dto.ReturnFilters) ([]model.Return, int64, error)
	ApproveReturn(ctx context.Context, id string) (*model.Return, error)
	RejectReturn(ctx context.Context, id string) (*model.Return, error)
	DeleteReturn(ctx context.Context, id string) error
}

package adjustment

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
)

type UseCase interface {
	CreateAdjustment(ctx context.Context, input *dto.CreateAdjustmentInput) (*dto.AdjustmentResult, error)
	ListAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) ([]model.Adjustment, int64, error)
}

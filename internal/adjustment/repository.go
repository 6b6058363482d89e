package adjustment

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
)

// Repository is the append-only adjustment ledger.
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, adj *model.Adjustment) error
	FindAll(ctx context.Context, filters *dto.AdjustmentFilters) ([]model.Adjustment, int64, error)
	MovementReport(ctx context.Context, filters *dto.ReportFilters) ([]model.MovementBucket, error)
}

package dashboard

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/dashboard/dto"
)

type UseCase interface {
	Stats(ctx context.Context) (*dto.Stats, error)
}

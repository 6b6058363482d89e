package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/adjustment"
	"github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/stock"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/cache"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const lockTTL = 5 * time.Second

type adjustmentUseCase struct {
	repo      adjustment.Repository
	stocks    stock.Repository
	cache     *cache.RedisClient
	publisher notification.Publisher
	logger    logger.ZapLogger
}

func NewAdjustmentUseCase(repo adjustment.Repository, stocks stock.Repository, cache *cache.RedisClient, publisher notification.Publisher, log logger.ZapLogger) adjustment.UseCase {
	return &adjustmentUseCase{
		repo:      repo,
		stocks:    stocks,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

// CreateAdjustment raises one stock variant to a new quantity and records the
// change in the ledger. The stock write and the ledger insert are two
// independent writes; a failure between them leaves the stock updated without
// a ledger row, which is logged.
func (uc *adjustmentUseCase) CreateAdjustment(ctx context.Context, input *dto.CreateAdjustmentInput) (*dto.AdjustmentResult, error) {
	if strings.TrimSpace(input.Reason) == "" {
		return nil, apperror.Validation("reason is required")
	}
	oid, err := model.ParseID(input.StockID)
	if err != nil {
		return nil, err
	}

	lockKey := "lock:stock:" + input.StockID
	lockValue := uuid.New().String()
	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire lock redis error", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, apperror.Conflict("stock is being adjusted, please try again")
	}
	defer func() {
		if err := uc.cache.ReleaseLock(context.Background(), lockKey, lockValue); err != nil {
			uc.logger.Warn("failed to release stock lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	s, err := uc.stocks.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	variant := s.Variant(input.Color)
	if variant == nil {
		return nil, apperror.NotFound(fmt.Sprintf("color %q not found on stock", input.Color))
	}

	prev := variant.Quantity
	if input.NewQuantity <= prev {
		return nil, apperror.Validation(fmt.Sprintf("new quantity must be greater than current quantity (%g)", prev))
	}

	now := time.Now()
	variant.Quantity = input.NewQuantity
	s.UpdatedAt = now
	s.RecomputeStatus()

	if err := uc.stocks.Update(ctx, s); err != nil {
		return nil, err
	}

	adj := &model.Adjustment{
		ID:           uuid.New().String(),
		StockID:      s.ID.Hex(),
		Product:      s.ProductName,
		StockType:    s.Type,
		Color:        variant.Color,
		PrevQuantity: prev,
		NewQuantity:  input.NewQuantity,
		Reason:       strings.TrimSpace(input.Reason),
		CreatedAt:    now,
	}
	if err := uc.repo.Create(ctx, adj); err != nil {
		uc.logger.Error("stock updated but ledger insert failed",
			zap.String("stock_id", adj.StockID),
			zap.String("color", adj.Color),
			zap.Float64("prev_quantity", prev),
			zap.Float64("new_quantity", adj.NewQuantity),
			zap.Error(err),
		)
		return nil, err
	}

	msg := fmt.Sprintf("Stock adjusted: %s %s (%s) %g -> %g. Reason: %s",
		adj.Product, adj.Color, adj.StockType, adj.PrevQuantity, adj.NewQuantity, adj.Reason)
	if err := uc.publisher.Publish(ctx, notification.NewEvent(model.CategoryStockAdjustment, msg)); err != nil {
		uc.logger.Error("failed to publish adjustment event", zap.Error(err))
	}

	return &dto.AdjustmentResult{Adjustment: adj, Stock: s}, nil
}

func (uc *adjustmentUseCase) ListAdjustments(ctx context.Context, filters *dto.AdjustmentFilters) ([]model.Adjustment, int64, error) {
	return uc.repo.FindAll(ctx, filters)
}

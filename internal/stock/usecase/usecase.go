package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/adjustment"
	adjdto "github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/stock"
	"github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stockUseCase struct {
	repo      stock.Repository
	ledger    adjustment.Repository
	publisher notification.Publisher
	logger    logger.ZapLogger
}

func NewStockUseCase(repo stock.Repository, ledger adjustment.Repository, publisher notification.Publisher, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:      repo,
		ledger:    ledger,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *stockUseCase) CreateStock(ctx context.Context, input *dto.StockInput) (*model.Stock, error) {
	s := &model.Stock{}
	if err := applyInput(s, input); err != nil {
		return nil, err
	}
	s.Touch(time.Now())
	if s.Date.IsZero() {
		s.Date = s.CreatedAt
	}
	s.RecomputeStatus()

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}

	if stock.EnteredLowStock("", s.Status) {
		uc.notify(ctx, model.CategoryLowStock, lowStockMessage(s))
	}
	return s, nil
}

func (uc *stockUseCase) GetStock(ctx context.Context, id string) (*model.Stock, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, oid)
}

func (uc *stockUseCase) ListStocks(ctx context.Context, filters *dto.StockFilters) ([]model.Stock, int64, error) {
	if filters.Type != "" && !model.IsValidStockType(filters.Type) {
		return nil, 0, apperror.Validation("invalid stock type: " + filters.Type)
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *stockUseCase) UpdateStock(ctx context.Context, id string, input *dto.StockInput) (*model.Stock, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	s, err := uc.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	prevStatus := s.Status
	if err := applyInput(s, input); err != nil {
		return nil, err
	}
	s.Touch(time.Now())
	s.RecomputeStatus()

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}

	if stock.EnteredLowStock(prevStatus, s.Status) {
		uc.notify(ctx, model.CategoryLowStock, lowStockMessage(s))
	}
	return s, nil
}

func (uc *stockUseCase) DeleteStock(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(ctx, oid)
}

func (uc *stockUseCase) Summary(ctx context.Context) (*dto.Summary, error) {
	items, total, err := uc.repo.FindAll(ctx, &dto.StockFilters{})
	if err != nil {
		return nil, err
	}

	summary := &dto.Summary{
		TotalDocuments: total,
		ByStatus: map[string]int64{
			model.StockStatusAvailable:  0,
			model.StockStatusLow:        0,
			model.StockStatusOut:        0,
			model.StockStatusProcessing: 0,
		},
	}
	for i := range items {
		summary.ByStatus[items[i].Status]++
		summary.TotalQuantity += items[i].TotalQuantity()
	}
	return summary, nil
}

func (uc *stockUseCase) CategoryBreakdown(ctx context.Context) ([]dto.CategoryBreakdown, error) {
	items, _, err := uc.repo.FindAll(ctx, &dto.StockFilters{})
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*dto.CategoryBreakdown, len(model.StockTypes))
	out := make([]dto.CategoryBreakdown, len(model.StockTypes))
	for i, t := range model.StockTypes {
		out[i].Type = t
		byType[t] = &out[i]
	}
	for i := range items {
		b, ok := byType[items[i].Type]
		if !ok {
			continue
		}
		b.Documents++
		b.TotalQuantity += items[i].TotalQuantity()
	}
	return out, nil
}

func (uc *stockUseCase) MovementReport(ctx context.Context, filters *dto.MovementReportFilters) ([]model.MovementBucket, error) {
	interval := filters.Interval
	switch interval {
	case "":
		interval = adjdto.IntervalDay
	case adjdto.IntervalDay, adjdto.IntervalWeek, adjdto.IntervalMonth:
	default:
		return nil, apperror.Validation("interval must be day, week or month")
	}
	if filters.From != nil && filters.To != nil && filters.To.Before(*filters.From) {
		return nil, apperror.Validation("to must not be before from")
	}

	return uc.ledger.MovementReport(ctx, &adjdto.ReportFilters{
		Interval: interval,
		From:     filters.From,
		To:       filters.To,
		StockID:  filters.StockID,
	})
}

func (uc *stockUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.Stock, int64, error) {
	return uc.repo.FindAll(ctx, &dto.StockFilters{
		Statuses: []string{model.StockStatusLow, model.StockStatusOut},
		Page:     page,
		PageSize: pageSize,
	})
}

func (uc *stockUseCase) notify(ctx context.Context, category, message string) {
	if err := uc.publisher.Publish(ctx, notification.NewEvent(category, message)); err != nil {
		uc.logger.Error("failed to publish stock event", zap.String("category", category), zap.Error(err))
	}
}

func lowStockMessage(s *model.Stock) string {
	return fmt.Sprintf("Low stock: %s (%s) is %s, %.2f remaining", s.ProductName, s.Type, s.Status, s.TotalQuantity())
}

func applyInput(s *model.Stock, in *dto.StockInput) error {
	if strings.TrimSpace(in.ProductName) == "" {
		return apperror.Validation("productName is required")
	}
	if !model.IsValidStockType(in.Type) {
		return apperror.Validation("invalid stock type: " + in.Type)
	}

	seen := make(map[string]bool, len(in.Variants))
	for _, v := range in.Variants {
		color := strings.ToLower(strings.TrimSpace(v.Color))
		if color == "" {
			return apperror.Validation("variant color is required")
		}
		if v.Quantity < 0 {
			return apperror.Validation("variant quantity must not be negative")
		}
		if seen[color] {
			return apperror.Validation("duplicate variant color: " + v.Color)
		}
		seen[color] = true
	}

	s.ProductID = nil
	if in.ProductID != "" {
		oid, err := primitive.ObjectIDFromHex(in.ProductID)
		if err != nil {
			return apperror.Validation("invalid productId")
		}
		s.ProductID = &oid
	}
	s.ProductName = strings.TrimSpace(in.ProductName)
	s.Type = in.Type
	s.Variants = append([]model.StockVariant{}, in.Variants...)
	s.Details = in.Details
	s.BatchNumber = in.BatchNumber
	s.Quality = in.Quality
	s.Location = in.Location
	s.Notes = in.Notes
	if in.Date != nil {
		s.Date = *in.Date
	}
	return nil
}

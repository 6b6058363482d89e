package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repo   *testutil.StockRepo
	ledger *testutil.AdjustmentRepo
	pub    *testutil.Publisher
	uc     *stockUseCase
}

func newFixture() *fixture {
	f := &fixture{
		repo:   testutil.NewStockRepo(),
		ledger: testutil.NewAdjustmentRepo(),
		pub:    &testutil.Publisher{},
	}
	f.uc = NewStockUseCase(f.repo, f.ledger, f.pub, logger.NewNop()).(*stockUseCase)
	return f
}

func grayInput(qty float64) *dto.StockInput {
	return &dto.StockInput{
		ProductName: "Lawn",
		Type:        model.StockTypeGray,
		Variants:    []model.StockVariant{{Color: "Blue", Quantity: qty, Unit: "meter"}},
	}
}

func TestCreateStockDerivesStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("low stock notifies", func(t *testing.T) {
		f := newFixture()
		s, err := f.uc.CreateStock(ctx, grayInput(50))
		require.NoError(t, err)
		assert.Equal(t, model.StockStatusLow, s.Status)
		assert.False(t, s.Date.IsZero())
		assert.Equal(t, []string{model.CategoryLowStock}, f.pub.Categories())

		stored, err := f.uc.GetStock(ctx, s.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, model.StockStatusLow, stored.Status)
	})

	t.Run("available stays quiet", func(t *testing.T) {
		f := newFixture()
		s, err := f.uc.CreateStock(ctx, grayInput(150))
		require.NoError(t, err)
		assert.Equal(t, model.StockStatusAvailable, s.Status)
		assert.Empty(t, f.pub.Events())
	})

	t.Run("factory is processing", func(t *testing.T) {
		f := newFixture()
		in := grayInput(20)
		in.Type = model.StockTypeFactory
		s, err := f.uc.CreateStock(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, model.StockStatusProcessing, s.Status)
	})
}

func TestCreateStockValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name  string
		input *dto.StockInput
	}{
		{"missing name", &dto.StockInput{Type: model.StockTypeGray}},
		{"bad type", &dto.StockInput{ProductName: "Lawn", Type: "Blue Stock"}},
		{"negative quantity", &dto.StockInput{ProductName: "Lawn", Type: model.StockTypeGray,
			Variants: []model.StockVariant{{Color: "Blue", Quantity: -1}}}},
		{"duplicate color", &dto.StockInput{ProductName: "Lawn", Type: model.StockTypeGray,
			Variants: []model.StockVariant{{Color: "Blue", Quantity: 1}, {Color: "blue", Quantity: 2}}}},
		{"bad product id", &dto.StockInput{ProductID: "xyz", ProductName: "Lawn", Type: model.StockTypeGray}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateStock(ctx, tt.input)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
		})
	}
	assert.Zero(t, f.repo.Len())
}

func TestUpdateStockNotifiesOnlyOnEnteringLow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	s, err := f.uc.CreateStock(ctx, grayInput(200))
	require.NoError(t, err)

	s, err = f.uc.UpdateStock(ctx, s.ID.Hex(), grayInput(40))
	require.NoError(t, err)
	assert.Equal(t, model.StockStatusLow, s.Status)

	_, err = f.uc.UpdateStock(ctx, s.ID.Hex(), grayInput(0))
	require.NoError(t, err)

	assert.Equal(t, []string{model.CategoryLowStock}, f.pub.Categories())

	_, err = f.uc.UpdateStock(ctx, "65a1b2c3d4e5f6a7b8c9d0e1", grayInput(1))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSummaryAndBreakdown(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for _, in := range []*dto.StockInput{
		grayInput(50),
		grayInput(300),
		{ProductName: "Silk", Type: model.StockTypeFactory, Variants: []model.StockVariant{{Color: "Red", Quantity: 70}}},
		{ProductName: "Silk", Type: model.StockTypeDesign},
	} {
		_, err := f.uc.CreateStock(ctx, in)
		require.NoError(t, err)
	}

	sum, err := f.uc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), sum.TotalDocuments)
	assert.Equal(t, 420.0, sum.TotalQuantity)
	assert.Equal(t, int64(1), sum.ByStatus[model.StockStatusLow])
	assert.Equal(t, int64(1), sum.ByStatus[model.StockStatusAvailable])
	assert.Equal(t, int64(1), sum.ByStatus[model.StockStatusProcessing])
	assert.Equal(t, int64(1), sum.ByStatus[model.StockStatusOut])

	breakdown, err := f.uc.CategoryBreakdown(ctx)
	require.NoError(t, err)
	require.Len(t, breakdown, 3)
	assert.Equal(t, dto.CategoryBreakdown{Type: model.StockTypeGray, Documents: 2, TotalQuantity: 350}, breakdown[0])
	assert.Equal(t, dto.CategoryBreakdown{Type: model.StockTypeFactory, Documents: 1, TotalQuantity: 70}, breakdown[1])
	assert.Equal(t, dto.CategoryBreakdown{Type: model.StockTypeDesign, Documents: 1, TotalQuantity: 0}, breakdown[2])

	low, total, err := f.uc.ListLowStock(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, low, 1)
	assert.Equal(t, int64(2), total)
}

func TestMovementReport(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.ledger.Buckets = []model.MovementBucket{{Adjustments: 2, Delta: 100}}

	buckets, err := f.uc.MovementReport(ctx, &dto.MovementReportFilters{StockID: "abc"})
	require.NoError(t, err)
	assert.Equal(t, f.ledger.Buckets, buckets)
	require.Len(t, f.ledger.Reports, 1)
	assert.Equal(t, "day", f.ledger.Reports[0].Interval)
	assert.Equal(t, "abc", f.ledger.Reports[0].StockID)

	_, err = f.uc.MovementReport(ctx, &dto.MovementReportFilters{Interval: "year"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	from := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err = f.uc.MovementReport(ctx, &dto.MovementReportFilters{From: &from, To: &to})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

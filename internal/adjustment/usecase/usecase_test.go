package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ledger *testutil.AdjustmentRepo
	stocks *testutil.StockRepo
	pub    *testutil.Publisher
	uc     *adjustmentUseCase
}

func newFixture(t *testing.T) (*fixture, *model.Stock) {
	t.Helper()
	f := &fixture{
		ledger: testutil.NewAdjustmentRepo(),
		stocks: testutil.NewStockRepo(),
		pub:    &testutil.Publisher{},
	}
	f.uc = NewAdjustmentUseCase(f.ledger, f.stocks, nil, f.pub, logger.NewNop()).(*adjustmentUseCase)

	s := &model.Stock{
		ProductName: "Lawn",
		Type:        model.StockTypeGray,
		Variants: []model.StockVariant{
			{Color: "Blue", Quantity: 50, Unit: "meter"},
		},
	}
	s.Touch(time.Now())
	s.RecomputeStatus()
	require.NoError(t, f.stocks.Create(context.Background(), s))
	return f, s
}

func TestCreateAdjustmentRaisesStock(t *testing.T) {
	f, s := newFixture(t)
	ctx := context.Background()
	require.Equal(t, model.StockStatusLow, s.Status)

	res, err := f.uc.CreateAdjustment(ctx, &dto.CreateAdjustmentInput{
		StockID:     s.ID.Hex(),
		Color:       "blue",
		NewQuantity: 150,
		Reason:      "recount",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StockStatusAvailable, res.Stock.Status)
	assert.Equal(t, 150.0, res.Stock.Variant("Blue").Quantity)

	stored, err := f.stocks.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StockStatusAvailable, stored.Status)
	assert.Equal(t, 150.0, stored.Variant("Blue").Quantity)

	require.Len(t, f.ledger.Entries, 1)
	entry := f.ledger.Entries[0]
	assert.Equal(t, s.ID.Hex(), entry.StockID)
	assert.Equal(t, "Blue", entry.Color)
	assert.Equal(t, 50.0, entry.PrevQuantity)
	assert.Equal(t, 150.0, entry.NewQuantity)
	assert.Equal(t, 100.0, entry.Delta())
	assert.Equal(t, "recount", entry.Reason)
	assert.NotEmpty(t, entry.ID)

	assert.Equal(t, []string{model.CategoryStockAdjustment}, f.pub.Categories())
}

func TestCreateAdjustmentRejections(t *testing.T) {
	f, s := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input dto.CreateAdjustmentInput
		kind  apperror.Kind
	}{
		{"same quantity", dto.CreateAdjustmentInput{StockID: s.ID.Hex(), Color: "Blue", NewQuantity: 50, Reason: "x"}, apperror.KindValidation},
		{"lower quantity", dto.CreateAdjustmentInput{StockID: s.ID.Hex(), Color: "Blue", NewQuantity: 10, Reason: "x"}, apperror.KindValidation},
		{"missing reason", dto.CreateAdjustmentInput{StockID: s.ID.Hex(), Color: "Blue", NewQuantity: 60, Reason: "  "}, apperror.KindValidation},
		{"unknown color", dto.CreateAdjustmentInput{StockID: s.ID.Hex(), Color: "Green", NewQuantity: 60, Reason: "x"}, apperror.KindNotFound},
		{"unknown stock", dto.CreateAdjustmentInput{StockID: "65a1b2c3d4e5f6a7b8c9d0e1", Color: "Blue", NewQuantity: 60, Reason: "x"}, apperror.KindNotFound},
		{"bad id", dto.CreateAdjustmentInput{StockID: "nope", Color: "Blue", NewQuantity: 60, Reason: "x"}, apperror.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.CreateAdjustment(ctx, &tt.input)
			assert.Equal(t, tt.kind, apperror.KindOf(err), "got %v", err)
		})
	}

	stored, err := f.stocks.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.Variant("Blue").Quantity)
	assert.Empty(t, f.ledger.Entries)
	assert.Empty(t, f.pub.Events())
}

func TestCreateAdjustmentLedgerFailure(t *testing.T) {
	f, s := newFixture(t)
	ctx := context.Background()
	f.ledger.CreateErr = errors.New("connection refused")

	_, err := f.uc.CreateAdjustment(ctx, &dto.CreateAdjustmentInput{
		StockID: s.ID.Hex(), Color: "Blue", NewQuantity: 80, Reason: "delivery",
	})
	require.Error(t, err)

	// The stock write is not rolled back.
	stored, err := f.stocks.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, stored.Variant("Blue").Quantity)
	assert.Empty(t, f.pub.Events())
}

func TestListAdjustments(t *testing.T) {
	f, s := newFixture(t)
	ctx := context.Background()

	for _, q := range []float64{60, 70, 80} {
		_, err := f.uc.CreateAdjustment(ctx, &dto.CreateAdjustmentInput{
			StockID: s.ID.Hex(), Color: "Blue", NewQuantity: q, Reason: "restock",
		})
		require.NoError(t, err)
	}

	items, total, err := f.uc.ListAdjustments(ctx, &dto.AdjustmentFilters{StockID: s.ID.Hex(), Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, 80.0, items[0].NewQuantity)
	assert.Equal(t, 70.0, items[0].PrevQuantity)
}

package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/returns/dto"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fixture struct {
	pub   *testutil.Publisher
	uc    *returnUseCase
	order *model.Order
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	orders := testutil.NewOrderRepo()
	o := &model.Order{
		OrderNumber: 7,
		Customer:    "Ali Traders",
		Status:      model.OrderStatusConfirmed,
		OrderDate:   time.Now(),
		Items: []model.OrderItem{
			{Product: "Lawn", Color: "Red", Quantity: 20, Price: 100},
			{Product: "Lawn", Color: "Blue", Quantity: 5, Price: 100},
		},
	}
	o.Touch(time.Now())
	require.NoError(t, orders.Create(context.Background(), o))

	pub := &testutil.Publisher{}
	uc := NewReturnUseCase(testutil.NewReturnRepo(), orders, &testutil.Sequencer{}, pub, logger.NewNop()).(*returnUseCase)
	return &fixture{pub: pub, uc: uc, order: o}
}

func (f *fixture) input(qty float64) *dto.CreateReturnInput {
	return &dto.CreateReturnInput{OrderID: f.order.ID.Hex(), Product: "lawn", Color: "Red", Quantity: qty, Reason: "torn"}
}

func TestCreateReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ret, err := f.uc.CreateReturn(ctx, f.input(4))
	require.NoError(t, err)
	assert.Equal(t, "RET-000001", ret.ReturnID)
	assert.Equal(t, model.ReturnStatusPending, ret.Status)
	assert.Equal(t, "Ali Traders", ret.Customer)
	assert.Equal(t, int64(7), ret.OrderNumber)
	assert.Equal(t, []string{model.CategoryNewReturn}, f.pub.Categories())

	second, err := f.uc.CreateReturn(ctx, f.input(1))
	require.NoError(t, err)
	assert.Equal(t, "RET-000002", second.ReturnID)

	// Without a color every line of the product counts, minus what was
	// already returned.
	all := f.input(20)
	all.Color = ""
	_, err = f.uc.CreateReturn(ctx, all)
	require.NoError(t, err)
}

func TestCreateReturnCountsEarlierReturns(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.uc.CreateReturn(ctx, f.input(15))
	require.NoError(t, err)

	_, err = f.uc.CreateReturn(ctx, f.input(15))
	assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)

	// Other colors keep their own allowance.
	blue := f.input(5)
	blue.Color = "blue"
	_, err = f.uc.CreateReturn(ctx, blue)
	require.NoError(t, err)

	// A rejected return frees its quantity again.
	_, err = f.uc.RejectReturn(ctx, first.ID.Hex())
	require.NoError(t, err)
	_, err = f.uc.CreateReturn(ctx, f.input(15))
	require.NoError(t, err)

	_, err = f.uc.CreateReturn(ctx, f.input(6))
	assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
}

func TestCreateReturnValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(in *dto.CreateReturnInput)
	}{
		{"zero quantity", func(in *dto.CreateReturnInput) { in.Quantity = 0 }},
		{"more than ordered", func(in *dto.CreateReturnInput) { in.Quantity = 21 }},
		{"product not in order", func(in *dto.CreateReturnInput) { in.Product = "Silk" }},
		{"color not in order", func(in *dto.CreateReturnInput) { in.Color = "Green" }},
		{"blank product", func(in *dto.CreateReturnInput) { in.Product = " " }},
		{"unknown order", func(in *dto.CreateReturnInput) { in.OrderID = primitive.NewObjectID().Hex() }},
		{"malformed order id", func(in *dto.CreateReturnInput) { in.OrderID = "42" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input(2)
			tt.mutate(in)
			_, err := f.uc.CreateReturn(context.Background(), in)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
		})
	}
	assert.Empty(t, f.pub.Events())
}

func TestProcessReturnIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	approved, err := f.uc.CreateReturn(ctx, f.input(1))
	require.NoError(t, err)
	rejected, err := f.uc.CreateReturn(ctx, f.input(1))
	require.NoError(t, err)

	got, err := f.uc.ApproveReturn(ctx, approved.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.ReturnStatusApproved, got.Status)
	assert.True(t, got.Approved)
	assert.NotNil(t, got.ProcessedAt)

	got, err = f.uc.RejectReturn(ctx, rejected.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.ReturnStatusRejected, got.Status)

	_, err = f.uc.RejectReturn(ctx, approved.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)
	_, err = f.uc.ApproveReturn(ctx, rejected.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindConflict), "got %v", err)

	stored, err := f.uc.GetReturn(ctx, approved.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, model.ReturnStatusApproved, stored.Status)
	assert.False(t, stored.Rejected)

	list, total, err := f.uc.ListReturns(ctx, &dto.ReturnFilters{Status: model.ReturnStatusRejected})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, rejected.ID, list[0].ID)

	_, _, err = f.uc.ListReturns(ctx, &dto.ReturnFilters{Status: "lost"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	processed := 0
	for _, c := range f.pub.Categories() {
		if c == model.CategoryReturnProcessed {
			processed++
		}
	}
	assert.Equal(t, 2, processed)
}

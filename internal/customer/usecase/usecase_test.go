package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase() (*customerUseCase, *testutil.OrderRepo, *testutil.Publisher) {
	orders := testutil.NewOrderRepo()
	pub := &testutil.Publisher{}
	uc := NewCustomerUseCase(testutil.NewCustomerRepo(), orders, pub, logger.NewNop()).(*customerUseCase)
	return uc, orders, pub
}

func TestCreateCustomer(t *testing.T) {
	uc, _, pub := newUseCase()
	ctx := context.Background()

	c, err := uc.CreateCustomer(ctx, &dto.CustomerInput{Name: "  Noor Fabrics ", City: "Karachi", Phone: "0300 1234567"})
	require.NoError(t, err)
	assert.Equal(t, "Noor Fabrics", c.Name)
	assert.Equal(t, model.CustomerTypeRetail, c.Type)
	assert.False(t, c.ID.IsZero())
	assert.Equal(t, []string{model.CategoryNewCustomer}, pub.Categories())

	got, err := uc.GetCustomer(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Karachi", got.City)
}

func TestCreateCustomerValidation(t *testing.T) {
	uc, _, pub := newUseCase()

	tests := []struct {
		name  string
		input dto.CustomerInput
	}{
		{"missing name", dto.CustomerInput{City: "Lahore"}},
		{"city outside list", dto.CustomerInput{Name: "A", City: "Dubai"}},
		{"city wrong case", dto.CustomerInput{Name: "A", City: "lahore"}},
		{"unknown type", dto.CustomerInput{Name: "A", City: "Lahore", Type: "vip"}},
		{"negative credit", dto.CustomerInput{Name: "A", City: "Lahore", CreditLimit: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateCustomer(context.Background(), &tt.input)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
		})
	}
	assert.Empty(t, pub.Events())
}

func TestListCustomersFilters(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	for _, in := range []dto.CustomerInput{
		{Name: "Ali Traders", City: "Lahore", Type: model.CustomerTypeWholesale},
		{Name: "Bilal Cloth", City: "Lahore"},
		{Name: "Chenab Mills", City: "Multan", Type: model.CustomerTypeWholesale},
	} {
		_, err := uc.CreateCustomer(ctx, &in)
		require.NoError(t, err)
	}

	items, total, err := uc.ListCustomers(ctx, &dto.CustomerFilters{City: "Lahore", Type: model.CustomerTypeWholesale})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Ali Traders", items[0].Name)

	_, total, err = uc.ListCustomers(ctx, &dto.CustomerFilters{Search: "mill"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, _, err = uc.ListCustomers(ctx, &dto.CustomerFilters{City: "Dubai"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestUpdateAndDeleteCustomer(t *testing.T) {
	uc, _, _ := newUseCase()
	ctx := context.Background()

	c, err := uc.CreateCustomer(ctx, &dto.CustomerInput{Name: "Ali", City: "Lahore"})
	require.NoError(t, err)

	updated, err := uc.UpdateCustomer(ctx, c.ID.Hex(), &dto.CustomerInput{Name: "Ali", City: "Sialkot", Type: model.CustomerTypeWholesale})
	require.NoError(t, err)
	assert.Equal(t, "Sialkot", updated.City)
	assert.Equal(t, model.CustomerTypeWholesale, updated.Type)

	_, err = uc.UpdateCustomer(ctx, c.ID.Hex(), &dto.CustomerInput{Name: "Ali", City: "Nowhere"})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	require.NoError(t, uc.DeleteCustomer(ctx, c.ID.Hex()))
	_, err = uc.GetCustomer(ctx, c.ID.Hex())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	err = uc.DeleteCustomer(ctx, "not-an-id")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestTopCustomers(t *testing.T) {
	uc, orders, _ := newUseCase()
	ctx := context.Background()

	ali, err := uc.CreateCustomer(ctx, &dto.CustomerInput{Name: "Ali", City: "Lahore"})
	require.NoError(t, err)

	addOrder := func(customer string, id *model.Customer, qty, price float64) {
		o := &model.Order{
			Customer:  customer,
			Status:    model.OrderStatusPending,
			OrderDate: time.Now(),
			Items:     []model.OrderItem{{Product: "Lawn", Quantity: qty, Price: price}},
		}
		if id != nil {
			o.CustomerID = &id.ID
		}
		o.Touch(time.Now())
		require.NoError(t, orders.Create(ctx, o))
	}
	addOrder("Ali", ali, 10, 10)
	addOrder("Ali", ali, 5, 10)
	addOrder("Walk-in", nil, 1, 500)
	addOrder("Zed", nil, 1, 1)

	top, err := uc.TopCustomers(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)

	assert.Equal(t, "Walk-in", top[0].Customer)
	assert.Equal(t, 500.0, top[0].Revenue)
	assert.Empty(t, top[0].City)

	assert.Equal(t, "Ali", top[1].Customer)
	assert.Equal(t, ali.ID.Hex(), top[1].CustomerID)
	assert.Equal(t, 2, top[1].Orders)
	assert.Equal(t, 150.0, top[1].Revenue)
	assert.Equal(t, "Lahore", top[1].City)
}

func TestCitiesIsACopy(t *testing.T) {
	uc, _, _ := newUseCase()
	cities := uc.Cities()
	cities[0] = "Changed"
	assert.Equal(t, "Karachi", uc.Cities()[0])
}

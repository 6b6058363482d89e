package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) CreateStock(ctx context.Context, input *dto.StockInput) (*model.Stock, error) {
	args := m.Called(ctx, input)
	s, _ := args.Get(0).(*model.Stock)
	return s, args.Error(1)
}

func (m *mockUseCase) GetStock(ctx context.Context, id string) (*model.Stock, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*model.Stock)
	return s, args.Error(1)
}

func (m *mockUseCase) ListStocks(ctx context.Context, filters *dto.StockFilters) ([]model.Stock, int64, error) {
	args := m.Called(ctx, filters)
	items, _ := args.Get(0).([]model.Stock)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockUseCase) UpdateStock(ctx context.Context, id string, input *dto.StockInput) (*model.Stock, error) {
	args := m.Called(ctx, id, input)
	s, _ := args.Get(0).(*model.Stock)
	return s, args.Error(1)
}

func (m *mockUseCase) DeleteStock(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUseCase) Summary(ctx context.Context) (*dto.Summary, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*dto.Summary)
	return s, args.Error(1)
}

func (m *mockUseCase) CategoryBreakdown(ctx context.Context) ([]dto.CategoryBreakdown, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).([]dto.CategoryBreakdown)
	return b, args.Error(1)
}

func (m *mockUseCase) MovementReport(ctx context.Context, filters *dto.MovementReportFilters) ([]model.MovementBucket, error) {
	args := m.Called(ctx, filters)
	b, _ := args.Get(0).([]model.MovementBucket)
	return b, args.Error(1)
}

func (m *mockUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]model.Stock, int64, error) {
	args := m.Called(ctx, page, pageSize)
	items, _ := args.Get(0).([]model.Stock)
	return items, args.Get(1).(int64), args.Error(2)
}

func setup(uc *mockUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewStockHandler(uc, logger.NewNop()).RegisterRoutes(r.Group("/api"))
	return r
}

func get(r *gin.Engine, path string) (*httptest.ResponseRecorder, httpx.Envelope) {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env httpx.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestListStocksPassesFilters(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ListStocks", mock.Anything, &dto.StockFilters{
		Type:      model.StockTypeDesign,
		Status:    model.StockStatusLow,
		ProductID: "65f0c0ffee0000000000abcd",
		Search:    "lawn",
		Page:      2,
		PageSize:  20,
	}).Return([]model.Stock{{ProductName: "Lawn"}}, int64(21), nil)
	uc.On("ListStocks", mock.Anything, mock.MatchedBy(func(f *dto.StockFilters) bool {
		return f.Type == "cotton"
	})).Return(nil, int64(0), apperror.Validation("invalid stock type: cotton"))
	r := setup(uc)

	w, env := get(r, "/api/stock?type=Design+Stock&status=low&productId=65f0c0ffee0000000000abcd&search=lawn&page=2&limit=20")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.CurrentPage)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.False(t, env.Pagination.HasNextPage)

	w, env = get(r, "/api/stock?type=cotton")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid stock type: cotton", env.Message)
	uc.AssertExpectations(t)
}

func TestMovementReportQuery(t *testing.T) {
	from := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.May, 31, 18, 30, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("MovementReport", mock.Anything, &dto.MovementReportFilters{
		Interval: "week",
		From:     &from,
		To:       &to,
		StockID:  "65f0c0ffee0000000000abcd",
	}).Return([]model.MovementBucket{{Period: from, Adjustments: 3, Delta: -4}}, nil)
	uc.On("MovementReport", mock.Anything, &dto.MovementReportFilters{Interval: "hour"}).
		Return(nil, apperror.Validation("interval must be day, week or month"))
	r := setup(uc)

	w, env := get(r, "/api/stock/movements?interval=week&from=2024-05-01&to=2024-05-31T18:30:00Z&stockId=65f0c0ffee0000000000abcd")
	require.Equal(t, http.StatusOK, w.Code)
	buckets := env.Data.([]any)
	require.Len(t, buckets, 1)
	assert.Equal(t, 3.0, buckets[0].(map[string]any)["adjustments"])

	w, env = get(r, "/api/stock/movements?interval=hour")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "interval must be day, week or month", env.Message)

	w, _ = get(r, "/api/stock/movements?from=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w, _ = get(r, "/api/stock/movements?to=31-05-2024")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	uc.AssertExpectations(t)
	uc.AssertNumberOfCalls(t, "MovementReport", 2)
}

func TestListLowStockPaging(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("ListLowStock", mock.Anything, 1, 10).Return([]model.Stock{}, int64(0), nil)
	r := setup(uc)

	w, env := get(r, "/api/stock/low?page=-4&limit=0")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.Pagination.CurrentPage)
	assert.Equal(t, 10, env.Pagination.ItemsPerPage)
	uc.AssertExpectations(t)
}

package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/textile-erp-service/internal/customer/usecase"
	"github.com/fekuna/textile-erp-service/internal/testutil"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	uc := usecase.NewCustomerUseCase(testutil.NewCustomerRepo(), testutil.NewOrderRepo(), &testutil.Publisher{}, log)

	r := gin.New()
	NewCustomerHandler(uc, log).RegisterRoutes(r.Group("/api"))
	return r
}

func do(r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, httpx.Envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env httpx.Envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCreateCustomerRejectsUnknownCity(t *testing.T) {
	r := newRouter()

	w, env := do(r, http.MethodPost, "/api/customers", map[string]any{"name": "Ali", "city": "Dubai"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "invalid city")

	w, _ = do(r, http.MethodPost, "/api/customers", map[string]any{"city": "Lahore"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerLifecycle(t *testing.T) {
	r := newRouter()

	w, env := do(r, http.MethodPost, "/api/customers", map[string]any{"name": "Ali", "city": "Lahore"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := env.Data.(map[string]any)
	assert.Equal(t, "retail", created["type"])
	id := created["id"].(string)

	w, env = do(r, http.MethodGet, "/api/customers?city=Lahore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(1), env.Pagination.TotalItems)

	w, _ = do(r, http.MethodGet, "/api/customers/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodDelete, "/api/customers/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(r, http.MethodGet, "/api/customers/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(r, http.MethodGet, "/api/customers/xyz", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCitiesEndpoint(t *testing.T) {
	r := newRouter()
	w, env := do(r, http.MethodGet, "/api/customers/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data, 12)
}

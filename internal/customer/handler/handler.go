package handler

import (
	"github.com/fekuna/textile-erp-service/internal/customer"
	"github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	uc     customer.UseCase
	logger logger.ZapLogger
}

func NewCustomerHandler(uc customer.UseCase, log logger.ZapLogger) *CustomerHandler {
	return &CustomerHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/customers")
	g.GET("", h.ListCustomers)
	g.POST("", h.CreateCustomer)
	g.GET("/top", h.TopCustomers)
	g.GET("/cities", h.Cities)
	g.GET("/:id", h.GetCustomer)
	g.PUT("/:id", h.UpdateCustomer)
	g.DELETE("/:id", h.DeleteCustomer)
}

func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var input dto.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	cust, err := h.uc.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, cust)
}

func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	cust, err := h.uc.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, cust)
}

func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	items, total, err := h.uc.ListCustomers(c.Request.Context(), &dto.CustomerFilters{
		Type:     c.Query("type"),
		City:     c.Query("city"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var input dto.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	cust, err := h.uc.UpdateCustomer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, cust)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.uc.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "customer deleted")
}

func (h *CustomerHandler) TopCustomers(c *gin.Context) {
	top, err := h.uc.TopCustomers(c.Request.Context(), httpx.IntQuery(c, "limit", 5))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, top)
}

func (h *CustomerHandler) Cities(c *gin.Context) {
	httpx.OK(c, h.uc.Cities())
}

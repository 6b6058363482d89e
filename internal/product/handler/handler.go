package handler

import (
	"github.com/fekuna/textile-erp-service/internal/product"
	"github.com/fekuna/textile-erp-service/internal/product/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/products")
	g.GET("", h.ListProducts)
	g.POST("", h.CreateProduct)
	g.GET("/names", h.ListNames)
	g.GET("/top", h.TopProducts)
	g.GET("/export", h.ExportExcel)
	g.GET("/:id", h.GetProduct)
	g.PUT("/:id", h.UpdateProduct)
	g.DELETE("/:id", h.DeleteProduct)
	g.GET("/:id/orders", h.RecentOrders)
	g.POST("/:id/repair-orders", h.RepairOrderItems)
	g.POST("/:id/reconcile-stock", h.ReconcileStock)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input dto.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, p)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	filters := &dto.ProductFilters{
		Category:    c.Query("category"),
		SearchQuery: c.Query("search"),
		SortBy:      c.Query("sortBy"),
		SortOrder:   c.Query("sortOrder"),
		Page:        page,
		PageSize:    limit,
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, products, pagination.NewMeta(page, limit, total))
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var input dto.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "product deleted")
}

func (h *ProductHandler) ListNames(c *gin.Context) {
	names, err := h.uc.ListNames(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, names)
}

func (h *ProductHandler) TopProducts(c *gin.Context) {
	top, err := h.uc.TopProducts(c.Request.Context(), httpx.IntQuery(c, "limit", 5))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, top)
}

func (h *ProductHandler) RecentOrders(c *gin.Context) {
	orders, err := h.uc.RecentOrders(c.Request.Context(), c.Param("id"), httpx.IntQuery(c, "limit", 10))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, orders)
}

func (h *ProductHandler) RepairOrderItems(c *gin.Context) {
	var input dto.RepairInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			httpx.BadRequest(c, err.Error())
			return
		}
	}

	res, err := h.uc.RepairOrderItems(c.Request.Context(), c.Param("id"), input.OldName)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, res)
}

func (h *ProductHandler) ReconcileStock(c *gin.Context) {
	res, err := h.uc.ReconcileStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, res)
}

func (h *ProductHandler) ExportExcel(c *gin.Context) {
	file, err := h.uc.ExportExcel(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")

	if err := file.Write(c.Writer); err != nil {
		h.logger.Error("failed to write excel export", zap.Error(err))
	}
}

package handler

import (
	"github.com/fekuna/textile-erp-service/internal/stock"
	"github.com/fekuna/textile-erp-service/internal/stock/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type StockHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewStockHandler(uc stock.UseCase, log logger.ZapLogger) *StockHandler {
	return &StockHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/stock")
	g.GET("", h.ListStocks)
	g.POST("", h.CreateStock)
	g.GET("/summary", h.Summary)
	g.GET("/breakdown", h.CategoryBreakdown)
	g.GET("/movements", h.MovementReport)
	g.GET("/low", h.ListLowStock)
	g.GET("/:id", h.GetStock)
	g.PUT("/:id", h.UpdateStock)
	g.DELETE("/:id", h.DeleteStock)
}

func (h *StockHandler) CreateStock(c *gin.Context) {
	var input dto.StockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	s, err := h.uc.CreateStock(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, s)
}

func (h *StockHandler) GetStock(c *gin.Context) {
	s, err := h.uc.GetStock(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, s)
}

func (h *StockHandler) ListStocks(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	filters := &dto.StockFilters{
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		ProductID: c.Query("productId"),
		Search:    c.Query("search"),
		Page:      page,
		PageSize:  limit,
	}

	items, total, err := h.uc.ListStocks(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

func (h *StockHandler) UpdateStock(c *gin.Context) {
	var input dto.StockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	s, err := h.uc.UpdateStock(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, s)
}

func (h *StockHandler) DeleteStock(c *gin.Context) {
	if err := h.uc.DeleteStock(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "stock deleted")
}

func (h *StockHandler) Summary(c *gin.Context) {
	summary, err := h.uc.Summary(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, summary)
}

func (h *StockHandler) CategoryBreakdown(c *gin.Context) {
	breakdown, err := h.uc.CategoryBreakdown(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, breakdown)
}

func (h *StockHandler) MovementReport(c *gin.Context) {
	from, err := httpx.TimeQuery(c, "from")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	to, err := httpx.TimeQuery(c, "to")
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	buckets, err := h.uc.MovementReport(c.Request.Context(), &dto.MovementReportFilters{
		Interval: c.Query("interval"),
		From:     from,
		To:       to,
		StockID:  c.Query("stockId"),
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, buckets)
}

func (h *StockHandler) ListLowStock(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	items, total, err := h.uc.ListLowStock(c.Request.Context(), page, limit)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

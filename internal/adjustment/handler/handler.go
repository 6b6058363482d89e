package handler

import (
	"github.com/fekuna/textile-erp-service/internal/adjustment"
	"github.com/fekuna/textile-erp-service/internal/adjustment/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type AdjustmentHandler struct {
	uc     adjustment.UseCase
	logger logger.ZapLogger
}

func NewAdjustmentHandler(uc adjustment.UseCase, log logger.ZapLogger) *AdjustmentHandler {
	return &AdjustmentHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/adjustments")
	g.GET("", h.ListAdjustments)
	g.POST("", h.CreateAdjustment)
}

func (h *AdjustmentHandler) CreateAdjustment(c *gin.Context) {
	var input dto.CreateAdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	res, err := h.uc.CreateAdjustment(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, res)
}

func (h *AdjustmentHandler) ListAdjustments(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	items, total, err := h.uc.ListAdjustments(c.Request.Context(), &dto.AdjustmentFilters{
		StockID:  c.Query("stockId"),
		Product:  c.Query("product"),
		Color:    c.Query("color"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

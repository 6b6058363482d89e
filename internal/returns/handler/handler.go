package handler

import (
	"github.com/fekuna/textile-erp-service/internal/returns"
	"github.com/fekuna/textile-erp-service/internal/returns/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type ReturnHandler struct {
	uc     returns.UseCase
	logger logger.ZapLogger
}

func NewReturnHandler(uc returns.UseCase, log logger.ZapLogger) *ReturnHandler {
	return &ReturnHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/returns")
	g.GET("", h.ListReturns)
	g.POST("", h.CreateReturn)
	g.GET("/:id", h.GetReturn)
	g.PATCH("/:id/approve", h.ApproveReturn)
	g.PATCH("/:id/reject", h.RejectReturn)
	g.DELETE("/:id", h.DeleteReturn)
}

func (h *ReturnHandler) CreateReturn(c *gin.Context) {
	var input dto.CreateReturnInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	ret, err := h.uc.CreateReturn(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, ret)
}

func (h *ReturnHandler) GetReturn(c *gin.Context) {
	ret, err := h.uc.GetReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, ret)
}

func (h *ReturnHandler) ListReturns(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	items, total, err := h.uc.ListReturns(c.Request.Context(), &dto.ReturnFilters{
		Status:   c.Query("status"),
		OrderID:  c.Query("orderId"),
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

func (h *ReturnHandler) ApproveReturn(c *gin.Context) {
	ret, err := h.uc.ApproveReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, ret)
}

func (h *ReturnHandler) RejectReturn(c *gin.Context) {
	ret, err := h.uc.RejectReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, ret)
}

func (h *ReturnHandler) DeleteReturn(c *gin.Context) {
	if err := h.uc.DeleteReturn(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "return deleted")
}

package handler

import (
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/order"
	"github.com/fekuna/textile-erp-service/internal/order/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	uc     order.UseCase
	live   gin.HandlerFunc
	logger logger.ZapLogger
}

// NewOrderHandler wires the REST endpoints; live serves the websocket feed
// and may be nil.
func NewOrderHandler(uc order.UseCase, live gin.HandlerFunc, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		live:   live,
		logger: log,
	}
}

func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/orders")
	g.GET("", h.ListOrders)
	g.POST("", h.CreateOrder)
	g.GET("/revenue", h.TotalRevenue)
	g.GET("/delivered", h.DeliveredCount)
	g.GET("/monthly-sales", h.MonthlySales)
	if h.live != nil {
		g.GET("/ws", h.live)
	}
	g.GET("/:id", h.GetOrder)
	g.PUT("/:id", h.UpdateOrder)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.DELETE("/:id", h.DeleteOrder)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input dto.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	o, err := h.uc.CreateOrder(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, o)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.uc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, o)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	page, limit := httpx.PageParams(c)
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

	filters := &dto.OrderFilters{
		Status:   c.Query("status"),
		Customer: c.Query("customer"),
		Search:   c.Query("search"),
		From:     from,
		To:       to,
		Page:     page,
		PageSize: limit,
	}
	if raw := c.Query("customerId"); raw != "" {
		oid, err := model.ParseID(raw)
		if err != nil {
			httpx.Error(c, h.logger, err)
			return
		}
		filters.CustomerID = &oid
	}

	items, total, err := h.uc.ListOrders(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var input dto.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	o, err := h.uc.UpdateOrder(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input dto.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	o, err := h.uc.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, o)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.uc.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "order deleted")
}

func (h *OrderHandler) TotalRevenue(c *gin.Context) {
	total, err := h.uc.TotalRevenue(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, gin.H{"totalRevenue": total.Round(2).InexactFloat64()})
}

func (h *OrderHandler) DeliveredCount(c *gin.Context) {
	n, err := h.uc.DeliveredCount(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, gin.H{"deliveredCount": n})
}

func (h *OrderHandler) MonthlySales(c *gin.Context) {
	sales, err := h.uc.MonthlySales(c.Request.Context(), httpx.IntQuery(c, "year", 0))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, sales)
}

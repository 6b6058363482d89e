package handler

import (
	"strconv"

	"github.com/fekuna/textile-erp-service/internal/admin"
	"github.com/fekuna/textile-erp-service/internal/admin/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	uc     admin.UseCase
	logger logger.ZapLogger
}

func NewAdminHandler(uc admin.UseCase, log logger.ZapLogger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admins")
	g.GET("", h.ListAdmins)
	g.POST("", h.CreateAdmin)
	g.GET("/:id", h.GetAdmin)
	g.PUT("/:id", h.UpdateAdmin)
	g.DELETE("/:id", h.DeleteAdmin)
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var input dto.AdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	a, err := h.uc.CreateAdmin(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, a)
}

func (h *AdminHandler) GetAdmin(c *gin.Context) {
	a, err := h.uc.GetAdmin(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, a)
}

func (h *AdminHandler) ListAdmins(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	filters := &dto.AdminFilters{
		Role:     c.Query("role"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: limit,
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			httpx.BadRequest(c, "active must be true or false")
			return
		}
		filters.Active = &active
	}

	items, total, err := h.uc.ListAdmins(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	var input dto.AdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	a, err := h.uc.UpdateAdmin(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, a)
}

func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	if err := h.uc.DeleteAdmin(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "admin deleted")
}

package handler

import (
	"strconv"

	"github.com/fekuna/textile-erp-service/internal/agent"
	"github.com/fekuna/textile-erp-service/internal/agent/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type AgentHandler struct {
	uc     agent.UseCase
	logger logger.ZapLogger
}

func NewAgentHandler(uc agent.UseCase, log logger.ZapLogger) *AgentHandler {
	return &AgentHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AgentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/agents")
	g.GET("", h.ListAgents)
	g.POST("", h.CreateAgent)
	g.GET("/:id", h.GetAgent)
	g.PUT("/:id", h.UpdateAgent)
	g.DELETE("/:id", h.DeleteAgent)
}

func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var input dto.AgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	a, err := h.uc.CreateAgent(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, a)
}

func (h *AgentHandler) GetAgent(c *gin.Context) {
	a, err := h.uc.GetAgent(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, a)
}

func (h *AgentHandler) ListAgents(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	filters := &dto.AgentFilters{
		City:     c.Query("city"),
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

	items, total, err := h.uc.ListAgents(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

func (h *AgentHandler) UpdateAgent(c *gin.Context) {
	var input dto.AgentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	a, err := h.uc.UpdateAgent(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, a)
}

func (h *AgentHandler) DeleteAgent(c *gin.Context) {
	if err := h.uc.DeleteAgent(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "agent deleted")
}

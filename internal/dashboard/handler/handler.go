package handler

import (
	"github.com/fekuna/textile-erp-service/internal/dashboard"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	uc     dashboard.UseCase
	logger logger.ZapLogger
}

func NewDashboardHandler(uc dashboard.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.GetStats)
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, stats)
}

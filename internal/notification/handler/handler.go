package handler

import (
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/notification/dto"
	"github.com/fekuna/textile-erp-service/pkg/httpx"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/fekuna/textile-erp-service/pkg/pagination"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	uc     notification.UseCase
	logger logger.ZapLogger
}

func NewNotificationHandler(uc notification.UseCase, log logger.ZapLogger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	msgs := rg.Group("/whatsapp-messages")
	msgs.GET("", h.ListMessages)
	msgs.POST("", h.SendMessage)
	msgs.DELETE("/:id", h.DeleteMessage)

	settings := rg.Group("/whatsapp-notification-settings")
	settings.GET("", h.GetSettings)
	settings.PUT("", h.UpdateSettings)
}

func (h *NotificationHandler) ListMessages(c *gin.Context) {
	page, limit := httpx.PageParams(c)
	items, total, err := h.uc.ListMessages(c.Request.Context(), &dto.MessageFilters{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: limit,
	})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Paginated(c, items, pagination.NewMeta(page, limit, total))
}

// SendMessage broadcasts a free-form message to every active admin.
func (h *NotificationHandler) SendMessage(c *gin.Context) {
	var input dto.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	res, err := h.uc.SendManual(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Created(c, res)
}

func (h *NotificationHandler) DeleteMessage(c *gin.Context) {
	if err := h.uc.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.Message(c, "message deleted")
}

func (h *NotificationHandler) GetSettings(c *gin.Context) {
	s, err := h.uc.GetSettings(c.Request.Context())
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, s)
}

func (h *NotificationHandler) UpdateSettings(c *gin.Context) {
	var input dto.SettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	s, err := h.uc.UpdateSettings(c.Request.Context(), &input)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	httpx.OK(c, s)
}

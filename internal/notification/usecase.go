package notification

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification/dto"
)

type UseCase interface {
	ListMessages(ctx context.Context, filters *dto.MessageFilters) ([]model.WhatsAppMessage, int64, error)
	SendManual(ctx context.Context, input *dto.SendMessageInput) (*DispatchResult, error)
	DeleteMessage(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*model.NotificationSettings, error)
	UpdateSettings(ctx context.Context, input *dto.SettingsInput) (*model.NotificationSettings, error)
}

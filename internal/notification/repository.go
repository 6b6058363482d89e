package notification

import (
	"context"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.WhatsAppMessage) error
	FindAll(ctx context.Context, filters *dto.MessageFilters) ([]model.WhatsAppMessage, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type SettingsRepository interface {
	// Get returns the stored settings, or the defaults when none were saved yet.
	Get(ctx context.Context) (*model.NotificationSettings, error)
	Save(ctx context.Context, settings *model.NotificationSettings) error
}

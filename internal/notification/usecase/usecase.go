package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/internal/notification/dto"
	"github.com/fekuna/textile-erp-service/pkg/apperror"
	"github.com/fekuna/textile-erp-service/pkg/logger"
)

type notificationUseCase struct {
	messages   notification.MessageRepository
	settings   notification.SettingsRepository
	dispatcher notification.Dispatcher
	logger     logger.ZapLogger
}

func NewNotificationUseCase(
	messages notification.MessageRepository,
	settings notification.SettingsRepository,
	dispatcher notification.Dispatcher,
	log logger.ZapLogger,
) notification.UseCase {
	return &notificationUseCase{
		messages:   messages,
		settings:   settings,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (uc *notificationUseCase) ListMessages(ctx context.Context, filters *dto.MessageFilters) ([]model.WhatsAppMessage, int64, error) {
	return uc.messages.FindAll(ctx, filters)
}

func (uc *notificationUseCase) SendManual(ctx context.Context, input *dto.SendMessageInput) (*notification.DispatchResult, error) {
	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return nil, apperror.Validation("message is required")
	}
	return uc.dispatcher.Dispatch(ctx, model.CategoryManual, msg)
}

func (uc *notificationUseCase) DeleteMessage(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	return uc.messages.Delete(ctx, oid)
}

func (uc *notificationUseCase) GetSettings(ctx context.Context) (*model.NotificationSettings, error) {
	return uc.settings.Get(ctx)
}

func (uc *notificationUseCase) UpdateSettings(ctx context.Context, input *dto.SettingsInput) (*model.NotificationSettings, error) {
	s, err := uc.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&s.NewOrder, input.NewOrder)
	set(&s.OrderConfirmed, input.OrderConfirmed)
	set(&s.LowStock, input.LowStock)
	set(&s.StockAdjustment, input.StockAdjustment)
	set(&s.NewReturn, input.NewReturn)
	set(&s.ReturnProcessed, input.ReturnProcessed)
	set(&s.NewCustomer, input.NewCustomer)
	set(&s.Manual, input.Manual)
	s.UpdatedAt = time.Now()

	if err := uc.settings.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

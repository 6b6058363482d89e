package usecase

import (
	"context"
	"time"

	"github.com/fekuna/textile-erp-service/internal/admin"
	admindto "github.com/fekuna/textile-erp-service/internal/admin/dto"
	"github.com/fekuna/textile-erp-service/internal/model"
	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"go.uber.org/zap"
)

type dispatcher struct {
	admins   admin.Repository
	messages notification.MessageRepository
	settings notification.SettingsRepository
	gateway  notification.Gateway
	logger   logger.ZapLogger
}

func NewDispatcher(
	admins admin.Repository,
	messages notification.MessageRepository,
	settings notification.SettingsRepository,
	gateway notification.Gateway,
	log logger.ZapLogger,
) notification.Dispatcher {
	return &dispatcher{
		admins:   admins,
		messages: messages,
		settings: settings,
		gateway:  gateway,
		logger:   log,
	}
}

// Dispatch sends message to every active admin one after another. A failed
// recipient is logged and does not stop the fan-out; the outcome is recorded
// as one WhatsAppMessage.
func (d *dispatcher) Dispatch(ctx context.Context, category, message string) (*notification.DispatchResult, error) {
	settings, err := d.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled(category) {
		d.logger.Debug("notification category disabled", zap.String("category", category))
		return d.record(ctx, category, message, &notification.DispatchResult{Status: model.MessageStatusSkipped})
	}

	active := true
	admins, _, err := d.admins.FindAll(ctx, &admindto.AdminFilters{Active: &active})
	if err != nil {
		return nil, err
	}
	if len(admins) == 0 {
		d.logger.Warn("no active admins to notify", zap.String("category", category))
		return d.record(ctx, category, message, &notification.DispatchResult{Status: model.MessageStatusSkipped})
	}

	res := &notification.DispatchResult{}
	for _, a := range admins {
		if err := d.gateway.Send(ctx, a.Phone, message); err != nil {
			res.Failed++
			d.logger.Warn("whatsapp delivery failed",
				zap.String("admin", a.Name),
				zap.String("category", category),
				zap.Error(err),
			)
			continue
		}
		res.Delivered++
	}

	switch {
	case res.Failed == 0:
		res.Status = model.MessageStatusSent
	case res.Delivered == 0:
		res.Status = model.MessageStatusFailed
	default:
		res.Status = model.MessageStatusPartial
	}
	return d.record(ctx, category, message, res)
}

func (d *dispatcher) record(ctx context.Context, category, message string, res *notification.DispatchResult) (*notification.DispatchResult, error) {
	msg := &model.WhatsAppMessage{
		Message:        message,
		RecipientCount: res.Delivered,
		FailedCount:    res.Failed,
		Category:       category,
		Status:         res.Status,
	}
	msg.Touch(time.Now())
	if err := d.messages.Create(ctx, msg); err != nil {
		d.logger.Error("failed to record whatsapp message", zap.String("category", category), zap.Error(err))
	}
	return res, nil
}

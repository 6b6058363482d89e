package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is satisfied by broker.KafkaConsumer.
type Reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type NotificationListener struct {
	consumer   Reader
	dispatcher notification.Dispatcher
	logger     logger.ZapLogger
}

func NewNotificationListener(consumer Reader, dispatcher notification.Dispatcher, logger logger.ZapLogger) *NotificationListener {
	return &NotificationListener{
		consumer:   consumer,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (l *NotificationListener) Start(ctx context.Context) {
	l.logger.Info("Starting notification Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping notification Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *NotificationListener) processMessage(ctx context.Context, value []byte) {
	var event notification.Event
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}
	if event.Category == "" || event.Message == "" {
		l.logger.Warn("Dropping incomplete notification event", zap.String("event_id", event.ID))
		return
	}

	res, err := l.dispatcher.Dispatch(ctx, event.Category, event.Message)
	if err != nil {
		l.logger.Error("Failed to dispatch notification",
			zap.String("event_id", event.ID),
			zap.String("category", event.Category),
			zap.Error(err),
		)
		return
	}
	l.logger.Debug("Notification dispatched",
		zap.String("event_id", event.ID),
		zap.String("status", res.Status),
		zap.Int("delivered", res.Delivered),
		zap.Int("failed", res.Failed),
	)
}

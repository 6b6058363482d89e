// Package publisher hands notification events to the dispatcher, either in
// process or through Kafka.
package publisher

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/fekuna/textile-erp-service/internal/notification"
	"github.com/fekuna/textile-erp-service/pkg/logger"
	"go.uber.org/zap"
)

const dispatchTimeout = 30 * time.Second

// Producer is satisfied by broker.KafkaProducer.
type Producer interface {
	Publish(ctx context.Context, key, value []byte) error
}

type KafkaPublisher struct {
	producer Producer
}

func NewKafkaPublisher(producer Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event notification.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, []byte(event.Category), data)
}

// DirectPublisher dispatches each event on its own goroutine so the caller's
// request is never held up by the WhatsApp API.
type DirectPublisher struct {
	dispatcher notification.Dispatcher
	logger     logger.ZapLogger
	wg         sync.WaitGroup
}

func NewDirectPublisher(dispatcher notification.Dispatcher, log logger.ZapLogger) *DirectPublisher {
	return &DirectPublisher{dispatcher: dispatcher, logger: log}
}

func (p *DirectPublisher) Publish(_ context.Context, event notification.Event) error {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if _, err := p.dispatcher.Dispatch(ctx, event.Category, event.Message); err != nil {
			p.logger.Error("failed to dispatch notification",
				zap.String("event_id", event.ID),
				zap.String("category", event.Category),
				zap.Error(err),
			)
		}
	}()
	return nil
}

// Wait blocks until every in-flight dispatch has finished.
func (p *DirectPublisher) Wait() {
	p.wg.Wait()
}

package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is a domain change that may be announced to admins.
type Event struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(category, message string) Event {
	return Event{
		ID:         uuid.New().String(),
		Category:   category,
		Message:    message,
		OccurredAt: time.Now(),
	}
}

// Publisher hands events to the dispatcher, synchronously or through the broker.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Dispatcher fans a message out to every active admin.
type Dispatcher interface {
	Dispatch(ctx context.Context, category, message string) (*DispatchResult, error)
}

type DispatchResult struct {
	Status    string `json:"status"`
	Delivered int    `json:"delivered"`
	Failed    int    `json:"failed"`
}

// Gateway delivers one message to one phone number.
type Gateway interface {
	Send(ctx context.Context, phone, message string) error
}

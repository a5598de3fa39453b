package domain

import (
	"time"

	"github.com/google/uuid"
)

// Типы событий, которые сервис публикует в брокер.
const (
	EventSubscriptionCreated = "SubscriptionCreatedEvent"
	EventSubscriptionDeleted = "SubscriptionDeletedEvent"
	EventPriceRefreshed      = "PriceRefreshedEvent"

	EventVersion = "1.0.0"
)

// SubscriptionEvent - событие жизненного цикла подписки.
type SubscriptionEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  string    `json:"event_type"`
	Email      string    `json:"email"`
	Link       string    `json:"link"`
	Price      *string   `json:"price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewSubscriptionEvent заполняет идентификатор и время события.
func NewSubscriptionEvent(eventType, email, link string) SubscriptionEvent {
	return SubscriptionEvent{
		EventID:    uuid.New(),
		EventType:  eventType,
		Email:      email,
		Link:       link,
		OccurredAt: time.Now().UTC(),
	}
}

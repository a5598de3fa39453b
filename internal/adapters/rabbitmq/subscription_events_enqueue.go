package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"subscription-service/internal/constants"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/contracts"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// messagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// SubscriptionEventsPublisher - реализация SubscriptionEventsPort для RabbitMQ
type SubscriptionEventsPublisher struct {
	producer messagePublisher
}

// NewSubscriptionEventsPublisher - конструктор
func NewSubscriptionEventsPublisher(producer messagePublisher) (*SubscriptionEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &SubscriptionEventsPublisher{producer: producer}, nil
}

func routingKeyFor(eventType string) (string, error) {
	switch eventType {
	case domain.EventSubscriptionCreated:
		return constants.RoutingKeySubscriptionCreated, nil
	case domain.EventSubscriptionDeleted:
		return constants.RoutingKeySubscriptionDeleted, nil
	case domain.EventPriceRefreshed:
		return constants.RoutingKeyPriceRefreshed, nil
	}
	return "", fmt.Errorf("rabbitmq adapter: unknown event type %q", eventType)
}

// PublishSubscriptionEvent проверяет событие по схеме и публикует его
func (a *SubscriptionEventsPublisher) PublishSubscriptionEvent(ctx context.Context, event domain.SubscriptionEvent) error {
	routingKey, err := routingKeyFor(event.EventType)
	if err != nil {
		return err
	}

	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "SubscriptionEventsPublisher",
		"routing_key": routingKey,
		"event_id":    event.EventID.String(),
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal event", err, nil)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := contracts.ValidateEvent(event.EventType, domain.EventVersion, body); err != nil {
		adapterLogger.Error("Event does not match its contract", err, nil)
		return fmt.Errorf("rabbitmq adapter: invalid %s: %w", event.EventType, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    event.EventID.String(),
		Type:         event.EventType,
		Timestamp:    event.OccurredAt,
		Headers: amqp.Table{
			"x-event-version": domain.EventVersion,
		},
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s: %w", event.EventType, err)
	}

	adapterLogger.Debug("Event published", nil)
	return nil
}

package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"subscription-service/internal/constants"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	routingKey string
	msg        amqp.Publishing
}

type fakeProducer struct {
	published []publishedMessage
	err       error
}

func (f *fakeProducer) Publish(_ context.Context, routingKey string, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedMessage{routingKey: routingKey, msg: msg})
	return nil
}

func TestPublishSubscriptionEvent(t *testing.T) {
	producer := &fakeProducer{}
	pub, err := NewSubscriptionEventsPublisher(producer)
	require.NoError(t, err)

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	event := domain.NewSubscriptionEvent(domain.EventSubscriptionCreated, "user@example.com", "https://prinzip.su/apartments/42")

	require.NoError(t, pub.PublishSubscriptionEvent(ctx, event))
	require.Len(t, producer.published, 1)

	got := producer.published[0]
	assert.Equal(t, constants.RoutingKeySubscriptionCreated, got.routingKey)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, "trace-1", got.msg.Headers["x-trace-id"])
	assert.Equal(t, event.EventID.String(), got.msg.MessageId)

	var decoded domain.SubscriptionEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &decoded))
	assert.Equal(t, event.Link, decoded.Link)
}

func TestPublishSubscriptionEvent_InvalidContract(t *testing.T) {
	producer := &fakeProducer{}
	pub, err := NewSubscriptionEventsPublisher(producer)
	require.NoError(t, err)

	// событие обновления цены без цены не проходит схему
	event := domain.NewSubscriptionEvent(domain.EventPriceRefreshed, "user@example.com", "https://prinzip.su/apartments/42")

	assert.Error(t, pub.PublishSubscriptionEvent(context.Background(), event))
	assert.Empty(t, producer.published)
}

func TestPublishSubscriptionEvent_UnknownTypeAndBrokerError(t *testing.T) {
	pub, err := NewSubscriptionEventsPublisher(&fakeProducer{err: errors.New("channel closed")})
	require.NoError(t, err)

	unknown := domain.NewSubscriptionEvent("SomethingElse", "user@example.com", "https://prinzip.su/x")
	assert.Error(t, pub.PublishSubscriptionEvent(context.Background(), unknown))

	deleted := domain.NewSubscriptionEvent(domain.EventSubscriptionDeleted, "user@example.com", "https://prinzip.su/houses/7")
	assert.Error(t, pub.PublishSubscriptionEvent(context.Background(), deleted))
}

func TestNewSubscriptionEventsPublisher_Nil(t *testing.T) {
	_, err := NewSubscriptionEventsPublisher(nil)
	assert.Error(t, err)
}

package rabbitmq_producer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublisherConfigValidate(t *testing.T) {
	assert.NoError(t, PublisherConfig{}.Validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "subscriptions"}.Validate())
	assert.NoError(t, PublisherConfig{ExchangeName: "subscriptions", ExchangeType: "topic", DeclareExchange: true}.Validate())

	assert.Error(t, PublisherConfig{ExchangeType: "topic", DeclareExchange: true}.Validate())
	assert.Error(t, PublisherConfig{ExchangeName: "subscriptions", DeclareExchange: true}.Validate())
}

func TestNewPublisher_NilManager(t *testing.T) {
	_, err := NewPublisher(PublisherConfig{}, nil)
	assert.Error(t, err)
}

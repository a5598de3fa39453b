package port

import (
	"context"
	"subscription-service/internal/core/domain"
)

// SubscriptionEventsPort публикует события подписок во внешний брокер.
type SubscriptionEventsPort interface {
	PublishSubscriptionEvent(ctx context.Context, event domain.SubscriptionEvent) error
}

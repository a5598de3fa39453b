package usecases_port

import (
	"context"
	"subscription-service/internal/core/domain"
)

type GetSubscriptionsUseCasePort interface {
	// Возвращает ссылки и актуальные цены для одного email
	Execute(ctx context.Context, email string) ([]domain.SubscriptionPrice, error)
}

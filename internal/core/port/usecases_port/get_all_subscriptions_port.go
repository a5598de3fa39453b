package usecases_port

import (
	"context"
	"subscription-service/internal/core/domain"
)

type GetAllSubscriptionsUseCasePort interface {
	Execute(ctx context.Context) ([]domain.Subscription, error)
}

package usecase

import (
	"context"
	"fmt"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"
)

type GetAllSubscriptionsUseCase struct {
	repo      port.SubscriptionRepositoryPort
	refresher *PriceRefresher
}

func NewGetAllSubscriptionsUseCase(repo port.SubscriptionRepositoryPort, refresher *PriceRefresher) *GetAllSubscriptionsUseCase {
	return &GetAllSubscriptionsUseCase{
		repo:      repo,
		refresher: refresher,
	}
}

// Execute возвращает все подписки с обновленными ценами.
// В отличие от GetSubscriptionsUseCase пустое хранилище - это успешный пустой список.
func (uc *GetAllSubscriptionsUseCase) Execute(ctx context.Context) ([]domain.Subscription, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetAllSubscriptions"})

	ucLogger.Info("Use case started", nil)

	subs, err := uc.repo.FindAll(ctx)
	if err != nil {
		ucLogger.Error("Failed to get subscriptions from repository", err, nil)
		return nil, fmt.Errorf("failed to get all subscriptions: %w", err)
	}
	if subs == nil {
		subs = []domain.Subscription{}
	}

	prices := uc.refresher.Refresh(ctx, subs)
	for i := range subs {
		price := prices[i].String()
		subs[i].Price = &price
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"subscriptions": len(subs)})
	return subs, nil
}

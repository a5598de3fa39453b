package usecase

import (
	"context"
	"fmt"
	"strings"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"
)

type GetSubscriptionsUseCase struct {
	repo      port.SubscriptionRepositoryPort
	refresher *PriceRefresher
}

func NewGetSubscriptionsUseCase(repo port.SubscriptionRepositoryPort, refresher *PriceRefresher) *GetSubscriptionsUseCase {
	return &GetSubscriptionsUseCase{
		repo:      repo,
		refresher: refresher,
	}
}

// Execute возвращает подписки email с актуальными ценами.
// Ноль подписок - это domain.ErrNotFound, а не пустой список.
func (uc *GetSubscriptionsUseCase) Execute(ctx context.Context, email string) ([]domain.SubscriptionPrice, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetSubscriptions",
		"email":    email,
	})

	ucLogger.Info("Use case started", nil)

	subs, err := uc.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		ucLogger.Error("Failed to get subscriptions from repository", err, nil)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	if len(subs) == 0 {
		ucLogger.Info("No subscriptions found", nil)
		return nil, domain.ErrNotFound
	}

	prices := uc.refresher.Refresh(ctx, subs)

	result := make([]domain.SubscriptionPrice, len(subs))
	for i, sub := range subs {
		result[i] = domain.SubscriptionPrice{
			Link:  sub.Link,
			Price: prices[i].String(),
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"subscriptions": len(result)})
	return result, nil
}

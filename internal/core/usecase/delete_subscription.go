package usecase

import (
	"context"
	"fmt"
	"strings"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"
)

type DeleteSubscriptionUseCase struct {
	repo   port.SubscriptionRepositoryPort
	events port.SubscriptionEventsPort // nil заменяется на noopEvents
}

func NewDeleteSubscriptionUseCase(repo port.SubscriptionRepositoryPort, events port.SubscriptionEventsPort) *DeleteSubscriptionUseCase {
	if events == nil {
		events = noopEvents{}
	}
	return &DeleteSubscriptionUseCase{repo: repo, events: events}
}

func (uc *DeleteSubscriptionUseCase) Execute(ctx context.Context, link, email string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "DeleteSubscription",
		"email":    email,
		"link":     link,
	})

	ucLogger.Info("Use case started", nil)

	email = strings.TrimSpace(email)
	removed, err := uc.repo.Remove(ctx, email, link)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	if !removed {
		ucLogger.Warn("Subscription does not exist", nil)
		return domain.ErrNotFound
	}

	event := domain.NewSubscriptionEvent(domain.EventSubscriptionDeleted, email, link)
	if err := uc.events.PublishSubscriptionEvent(ctx, event); err != nil {
		ucLogger.Warn("Failed to publish subscription deleted event", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

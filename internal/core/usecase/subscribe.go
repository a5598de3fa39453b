package usecase

import (
	"context"
	"fmt"
	"strings"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"
	"subscription-service/internal/core/validation"
)

// Результаты подписки для метрик
const (
	SubscribeCreated   = "created"
	SubscribeInvalid   = "invalid"
	SubscribeDuplicate = "duplicate"
	SubscribeFailed    = "failed"
)

type SubscribeUseCase struct {
	repo          port.SubscriptionRepositoryPort
	prober        port.LinkProberPort
	events        port.SubscriptionEventsPort // nil заменяется на noopEvents
	metrics       port.MetricsPort
	trustedPrefix string
}

func NewSubscribeUseCase(
	repo port.SubscriptionRepositoryPort,
	prober port.LinkProberPort,
	events port.SubscriptionEventsPort,
	metrics port.MetricsPort,
	trustedPrefix string,
) *SubscribeUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if events == nil {
		events = noopEvents{}
	}
	return &SubscribeUseCase{
		repo:          repo,
		prober:        prober,
		events:        events,
		metrics:       metrics,
		trustedPrefix: trustedPrefix,
	}
}

func (uc *SubscribeUseCase) Execute(ctx context.Context, link, email string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "Subscribe",
		"email":    email,
		"link":     link,
	})

	ucLogger.Info("Use case started", nil)

	// Сначала проверки без сети: до сайта доходим, только если ссылка корректна.
	if !validation.IsValidEmail(email) || !validation.IsWellFormedLink(link, uc.trustedPrefix) {
		ucLogger.Warn("Subscription rejected: invalid link or email", nil)
		uc.metrics.ObserveSubscribe(SubscribeInvalid)
		return domain.ErrValidation
	}

	if !uc.prober.IsReachable(ctx, link) {
		ucLogger.Warn("Subscription rejected: link is unreachable", nil)
		uc.metrics.ObserveSubscribe(SubscribeInvalid)
		return fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrUnreachable)
	}

	email = strings.TrimSpace(email)

	exists, err := uc.repo.Exists(ctx, email, link)
	if err != nil {
		ucLogger.Error("Failed to check existing subscription", err, nil)
		uc.metrics.ObserveSubscribe(SubscribeFailed)
		return fmt.Errorf("failed to check existing subscription: %w", err)
	}
	if exists {
		ucLogger.Warn("Subscription already exists", nil)
		uc.metrics.ObserveSubscribe(SubscribeDuplicate)
		return domain.ErrDuplicate
	}

	sub, err := uc.repo.Add(ctx, email, link)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		uc.metrics.ObserveSubscribe(SubscribeFailed)
		return fmt.Errorf("failed to add subscription: %w", err)
	}
	uc.metrics.ObserveSubscribe(SubscribeCreated)

	event := domain.NewSubscriptionEvent(domain.EventSubscriptionCreated, sub.Email, sub.Link)
	if err := uc.events.PublishSubscriptionEvent(ctx, event); err != nil {
		// подписка уже сохранена, событие не критично
		ucLogger.Warn("Failed to publish subscription created event", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"subscription_id": sub.ID})
	return nil
}

package port

import (
	"context"
	"subscription-service/internal/core/domain"
)

// SubscriptionRepositoryPort - контракт хранилища подписок.
type SubscriptionRepositoryPort interface {
	Exists(ctx context.Context, email, link string) (bool, error)
	Add(ctx context.Context, email, link string) (*domain.Subscription, error)
	FindByEmail(ctx context.Context, email string) ([]domain.Subscription, error)
	FindAll(ctx context.Context) ([]domain.Subscription, error)

	// Remove удаляет первую подходящую запись. Возвращает false, если записи не было.
	Remove(ctx context.Context, email, link string) (bool, error)

	UpdatePrice(ctx context.Context, id int64, price string) error
}

package postgres_adapter

import (
	"context"
	"fmt"

	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSubscriptionRepository - реализация порта хранилища подписок для PostgreSQL.
type PostgresSubscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSubscriptionRepository - конструктор.
func NewPostgresSubscriptionRepository(pool *pgxpool.Pool) (*PostgresSubscriptionRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresSubscriptionRepository{pool: pool}, nil
}

func (r *PostgresSubscriptionRepository) repoLogger(ctx context.Context, method string, fields port.Fields) port.LoggerPort {
	base := port.Fields{
		"component": "PostgresSubscriptionRepository",
		"method":    method,
	}
	for k, v := range fields {
		base[k] = v
	}
	return contextkeys.LoggerFromContext(ctx).WithFields(base)
}

// Exists проверяет, есть ли уже подписка с такой парой (email, link).
func (r *PostgresSubscriptionRepository) Exists(ctx context.Context, email, link string) (bool, error) {
	logger := r.repoLogger(ctx, "Exists", port.Fields{"email": email, "link": link})

	query := `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE email = $1 AND link = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, email, link).Scan(&exists); err != nil {
		logger.Error("Failed to check subscription existence", err, port.Fields{"query": query})
		return false, fmt.Errorf("failed to check subscription existence: %w", err)
	}
	return exists, nil
}

// Add вставляет новую подписку без цены.
func (r *PostgresSubscriptionRepository) Add(ctx context.Context, email, link string) (*domain.Subscription, error) {
	logger := r.repoLogger(ctx, "Add", port.Fields{"email": email, "link": link})

	query := `INSERT INTO subscriptions (email, link) VALUES ($1, $2) RETURNING id, created_at`

	sub := &domain.Subscription{Email: email, Link: link}
	if err := r.pool.QueryRow(ctx, query, email, link).Scan(&sub.ID, &sub.CreatedAt); err != nil {
		logger.Error("Failed to insert subscription", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to insert subscription: %w", err)
	}

	logger.Debug("Subscription inserted", port.Fields{"id": sub.ID})
	return sub, nil
}

// FindByEmail возвращает подписки одного email в порядке добавления.
func (r *PostgresSubscriptionRepository) FindByEmail(ctx context.Context, email string) ([]domain.Subscription, error) {
	logger := r.repoLogger(ctx, "FindByEmail", port.Fields{"email": email})

	query := `SELECT id, email, link, price, created_at FROM subscriptions WHERE email = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		logger.Error("Failed to query subscriptions by email", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query subscriptions by email: %w", err)
	}

	subs, err := pgx.CollectRows(rows, scanSubscription)
	if err != nil {
		logger.Error("Failed to scan subscriptions", err, nil)
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}
	return subs, nil
}

// FindAll возвращает все подписки в порядке добавления.
func (r *PostgresSubscriptionRepository) FindAll(ctx context.Context) ([]domain.Subscription, error) {
	logger := r.repoLogger(ctx, "FindAll", nil)

	query := `SELECT id, email, link, price, created_at FROM subscriptions ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Failed to query subscriptions", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}

	subs, err := pgx.CollectRows(rows, scanSubscription)
	if err != nil {
		logger.Error("Failed to scan subscriptions", err, nil)
		return nil, fmt.Errorf("failed to scan subscriptions: %w", err)
	}
	return subs, nil
}

// Remove удаляет первую (по id) подписку с такой парой (email, link).
func (r *PostgresSubscriptionRepository) Remove(ctx context.Context, email, link string) (bool, error) {
	logger := r.repoLogger(ctx, "Remove", port.Fields{"email": email, "link": link})

	query := `
		DELETE FROM subscriptions
		WHERE id = (
			SELECT id FROM subscriptions
			WHERE email = $1 AND link = $2
			ORDER BY id
			LIMIT 1
		)`

	cmdTag, err := r.pool.Exec(ctx, query, email, link)
	if err != nil {
		logger.Error("Failed to delete subscription", err, port.Fields{"query": query})
		return false, fmt.Errorf("failed to delete subscription: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.Warn("Attempted to remove a subscription that did not exist.", nil)
		return false, nil
	}
	return true, nil
}

// UpdatePrice сохраняет последнюю полученную цену.
func (r *PostgresSubscriptionRepository) UpdatePrice(ctx context.Context, id int64, price string) error {
	logger := r.repoLogger(ctx, "UpdatePrice", port.Fields{"id": id})

	query := `UPDATE subscriptions SET price = $2 WHERE id = $1`

	if _, err := r.pool.Exec(ctx, query, id, price); err != nil {
		logger.Error("Failed to update subscription price", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update subscription price: %w", err)
	}
	return nil
}

func scanSubscription(row pgx.CollectableRow) (domain.Subscription, error) {
	var s domain.Subscription
	err := row.Scan(&s.ID, &s.Email, &s.Link, &s.Price, &s.CreatedAt)
	return s, err
}

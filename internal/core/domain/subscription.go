package domain

import "time"

// Subscription - подписка email на страницу объекта.
// Пара (Email, Link) уникальна, уникальность проверяется приложением перед вставкой.
type Subscription struct {
	ID        int64
	Email     string
	Link      string
	Price     *string // кэш последней цены, может быть устаревшим
	CreatedAt time.Time
}

// SubscriptionPrice - строка ответа для списка подписок одного email.
type SubscriptionPrice struct {
	Link  string
	Price string
}

package constants

// Ключи маршрутизации событий подписок
const (
	RoutingKeySubscriptionCreated = "subscription.created"
	RoutingKeySubscriptionDeleted = "subscription.deleted"
	RoutingKeyPriceRefreshed      = "subscription.price_refreshed"
)

// Обменник по умолчанию
const (
	DefaultSubscriptionsExchange = "subscriptions"
	ExchangeTypeTopic            = "topic"
)

package usecase

import (
	"context"
	"fmt"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"
	"time"

	"golang.org/x/sync/errgroup"
)

// PriceRefresher заново получает цены для набора подписок.
// Ошибка по одной строке не влияет на остальные: такая строка получает domain.NoPrice().
type PriceRefresher struct {
	fetcher     port.PageFetcherPort
	extractor   port.PriceExtractorPort
	metrics     port.MetricsPort
	concurrency int

	// Если priceStore != nil, новые цены сохраняются в хранилище,
	// а об изменении цены публикуется событие.
	priceStore port.SubscriptionRepositoryPort
	events     port.SubscriptionEventsPort
}

type RefresherOption func(*PriceRefresher)

// WithConcurrency задает число одновременных загрузок страниц. 1 - строго последовательно.
func WithConcurrency(n int) RefresherOption {
	return func(r *PriceRefresher) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

func WithMetrics(m port.MetricsPort) RefresherOption {
	return func(r *PriceRefresher) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithPricePersistence включает сохранение обновленных цен.
func WithPricePersistence(store port.SubscriptionRepositoryPort, events port.SubscriptionEventsPort) RefresherOption {
	return func(r *PriceRefresher) {
		r.priceStore = store
		if events != nil {
			r.events = events
		}
	}
}

func NewPriceRefresher(fetcher port.PageFetcherPort, extractor port.PriceExtractorPort, opts ...RefresherOption) *PriceRefresher {
	r := &PriceRefresher{
		fetcher:     fetcher,
		extractor:   extractor,
		metrics:     noopMetrics{},
		events:      noopEvents{},
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Refresh возвращает результаты в том же порядке, что и подписки.
func (r *PriceRefresher) Refresh(ctx context.Context, subs []domain.Subscription) []domain.PriceResult {
	results := make([]domain.PriceResult, len(subs))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, sub := range subs {
		g.Go(func() error {
			results[i] = r.RefreshPrice(ctx, sub.Link)
			return nil
		})
	}
	_ = g.Wait() // горутины не возвращают ошибок

	if r.priceStore != nil {
		r.persist(ctx, subs, results)
	}
	return results
}

// RefreshPrice загружает страницу и извлекает из нее цену.
func (r *PriceRefresher) RefreshPrice(ctx context.Context, link string) (result domain.PriceResult) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PriceRefresher",
		"link":      link,
	})
	kind := domain.ClassifyListing(link)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("Price refresh panicked, falling back to no data", fmt.Errorf("%w: %v", domain.ErrExtraction, rec), nil)
			result = domain.NoPrice()
		}
	}()

	start := time.Now()
	html, err := r.fetcher.FetchPage(ctx, link)
	r.metrics.ObserveFetch(err == nil, time.Since(start))
	if err != nil {
		logger.Warn("Failed to fetch listing page", port.Fields{"error": err.Error()})
		return domain.NoPrice()
	}

	result = r.extractor.ExtractPrice(ctx, html, link)
	r.metrics.ObserveExtraction(kind, result.Available())
	if !result.Available() {
		logger.Warn("Price not found on listing page", port.Fields{"listing_kind": kind.String()})
		return result
	}

	logger.Debug("Price refreshed", port.Fields{"price": result.String()})
	return result
}

func (r *PriceRefresher) persist(ctx context.Context, subs []domain.Subscription, results []domain.PriceResult) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "PriceRefresher"})

	for i, sub := range subs {
		if !results[i].Available() {
			continue
		}
		price := results[i].String()
		if sub.Price != nil && *sub.Price == price {
			continue
		}

		if err := r.priceStore.UpdatePrice(ctx, sub.ID, price); err != nil {
			logger.Error("Failed to persist refreshed price", err, port.Fields{"subscription_id": sub.ID})
			continue
		}

		event := domain.NewSubscriptionEvent(domain.EventPriceRefreshed, sub.Email, sub.Link)
		event.Price = &price
		if err := r.events.PublishSubscriptionEvent(ctx, event); err != nil {
			logger.Warn("Failed to publish price refreshed event", port.Fields{"error": err.Error(), "subscription_id": sub.ID})
		}
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveFetch(bool, time.Duration)            {}
func (noopMetrics) ObserveExtraction(domain.ListingKind, bool) {}
func (noopMetrics) ObserveSubscribe(string)                    {}

// noopEvents используется, когда брокер не подключен
type noopEvents struct{}

func (noopEvents) PublishSubscriptionEvent(context.Context, domain.SubscriptionEvent) error {
	return nil
}

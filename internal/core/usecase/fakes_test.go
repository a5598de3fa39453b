package usecase

import (
	"context"
	"errors"
	"subscription-service/internal/core/domain"
	"sync"
	"time"
)

var errStore = errors.New("store is down")

// memoryRepo - хранилище подписок в памяти для тестов.
type memoryRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    []domain.Subscription
	updates map[int64]string
	failAll bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{updates: make(map[int64]string)}
}

func (r *memoryRepo) Exists(_ context.Context, email, link string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return false, errStore
	}
	for _, row := range r.rows {
		if row.Email == email && row.Link == link {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) Add(_ context.Context, email, link string) (*domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, errStore
	}
	r.nextID++
	sub := domain.Subscription{ID: r.nextID, Email: email, Link: link, CreatedAt: time.Now()}
	r.rows = append(r.rows, sub)
	return &sub, nil
}

func (r *memoryRepo) FindByEmail(_ context.Context, email string) ([]domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, errStore
	}
	var out []domain.Subscription
	for _, row := range r.rows {
		if row.Email == email {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memoryRepo) FindAll(_ context.Context) ([]domain.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, errStore
	}
	return append([]domain.Subscription(nil), r.rows...), nil
}

func (r *memoryRepo) Remove(_ context.Context, email, link string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return false, errStore
	}
	for i, row := range r.rows {
		if row.Email == email && row.Link == link {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) UpdatePrice(_ context.Context, id int64, price string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return errStore
	}
	r.updates[id] = price
	return nil
}

type fakeProber struct {
	mu        sync.Mutex
	reachable bool
	calls     int
}

func (p *fakeProber) IsReachable(context.Context, string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.reachable
}

// fakeFetcher отдает заранее заданные страницы, для остальных ссылок - ошибку.
type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) FetchPage(_ context.Context, link string) (string, error) {
	if html, ok := f.pages[link]; ok {
		return html, nil
	}
	return "", domain.ErrFetch
}

// fakeExtractor возвращает HTML как цену; пустая страница - "нет данных".
type fakeExtractor struct {
	panicOn string
}

func (e *fakeExtractor) ExtractPrice(_ context.Context, html, _ string) domain.PriceResult {
	if e.panicOn != "" && html == e.panicOn {
		panic("broken page")
	}
	return domain.PriceOf(html)
}

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.SubscriptionEvent
	err    error
}

func (e *recordingEvents) PublishSubscriptionEvent(_ context.Context, event domain.SubscriptionEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

package pagefetcher

import (
	"context"
	"fmt"

	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"

	"github.com/gocolly/colly/v2"
)

// FetchPage выполняет один GET и возвращает тело страницы как текст
func (a *PageFetcherAdapter) FetchPage(ctx context.Context, link string) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PageFetcherAdapter",
		"method":    "FetchPage",
	})

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	collector := a.collector.Clone()
	collector.Context = ctx

	var body string
	var fetchErr error

	collector.OnResponse(func(r *colly.Response) {
		// успех - любой 2xx, включая 204 с пустым телом
		if r.StatusCode < 200 || r.StatusCode > 299 {
			fetchErr = fmt.Errorf("%w: %s responded with status %d", domain.ErrFetch, link, r.StatusCode)
			return
		}
		body = string(r.Body)
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("%w: %s: %v", domain.ErrFetch, link, err)
	})

	if err := collector.Visit(link); err != nil && fetchErr == nil {
		fetchErr = fmt.Errorf("%w: %s: %v", domain.ErrFetch, link, err)
	}

	if fetchErr != nil {
		logger.Warn("Page fetch failed", port.Fields{"url": link, "error": fetchErr.Error()})
		return "", fetchErr
	}

	logger.Debug("Page fetched", port.Fields{"url": link, "bytes": len(body)})
	return body, nil
}

package pagefetcher

import (
	"context"

	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/port"

	"github.com/gocolly/colly/v2"
)

// IsReachable возвращает true, если сервер ответил хоть каким-то HTTP-статусом.
// Ошибки транспорта (DNS, соединение, TLS, таймаут, отмена) означают недоступность.
func (a *PageFetcherAdapter) IsReachable(ctx context.Context, link string) bool {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PageFetcherAdapter",
		"method":    "IsReachable",
	})

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	collector := a.collector.Clone()
	collector.Context = ctx

	reachable := false

	collector.OnResponse(func(r *colly.Response) {
		reachable = true
	})

	// 4xx/5xx тоже приходят в OnResponse, сюда попадают только ошибки транспорта
	collector.OnError(func(r *colly.Response, err error) {
		logger.Warn("Link is unreachable", port.Fields{"url": link, "error": err.Error()})
	})

	_ = collector.Visit(link)

	return reachable
}

package pagefetcher

import (
	"subscription-service/internal/core/port"

	"github.com/gocolly/colly/v2/debug"
)

// collyDebugBridge пересылает отладочные события colly в LoggerPort
type collyDebugBridge struct {
	logger port.LoggerPort
}

func (b *collyDebugBridge) Init() error { return nil }

func (b *collyDebugBridge) Event(e *debug.Event) {
	fields := port.Fields{
		"colly_event":  e.Type,
		"request_id":   e.RequestID,
		"collector_id": e.CollectorID,
	}
	for k, v := range e.Values {
		fields[k] = v
	}
	b.logger.Debug("colly event", fields)
}

package pagefetcher

import (
	"time"

	"subscription-service/internal/core/port"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// Config - параметры загрузчика страниц
type Config struct {
	// Таймаут одного запроса
	Timeout time.Duration
	// Фиксированный User-Agent, если пусто - случайный браузерный
	UserAgent string
	// Разрешенные домены, пусто - любые
	AllowedDomains []string
	// Предел размера тела в байтах, 0 - без ограничения.
	// Более длинное тело colly обрезает молча.
	MaxBodySize int
	// Если задан, события colly пишутся в него на уровне debug
	Logger port.LoggerPort
}

// PageFetcherAdapter загружает страницы объявлений и проверяет доступность ссылок
type PageFetcherAdapter struct {
	// родительский коллектор, клоны разделяют с ним HTTP-бэкенд
	collector *colly.Collector
	timeout   time.Duration
}

// NewPageFetcherAdapter - конструктор
func NewPageFetcherAdapter(cfg Config) *PageFetcherAdapter {
	opts := []colly.CollectorOption{
		colly.AllowURLRevisit(),
		colly.MaxBodySize(cfg.MaxBodySize),
		// любой ответ сервера приходит в OnResponse, OnError - только транспорт
		colly.ParseHTTPErrorResponse(),
	}
	if len(cfg.AllowedDomains) > 0 {
		opts = append(opts, colly.AllowedDomains(cfg.AllowedDomains...))
	}
	if cfg.Logger != nil {
		bridge := &collyDebugBridge{logger: cfg.Logger.WithFields(port.Fields{"component": "colly"})}
		opts = append(opts, colly.Debugger(bridge))
	}

	c := colly.NewCollector(opts...)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c.SetRequestTimeout(timeout)

	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	} else {
		extensions.RandomUserAgent(c)
	}

	return &PageFetcherAdapter{
		collector: c,
		timeout:   timeout,
	}
}

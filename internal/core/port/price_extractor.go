package port

import (
	"context"
	"subscription-service/internal/core/domain"
)

// PriceExtractorPort находит цену в HTML страницы объекта.
// Никогда не возвращает ошибку: любой сбой дает domain.NoPrice().
// Контекст нужен только для логгера запроса.
type PriceExtractorPort interface {
	ExtractPrice(ctx context.Context, html, sourceURL string) domain.PriceResult
}

package priceparser

import (
	"context"
	"strings"
	"subscription-service/internal/contextkeys"
	"subscription-service/internal/core/domain"
	"subscription-service/internal/core/port"

	"github.com/PuerkitoBio/goquery"
)

// Extractor реализует PriceExtractorPort для страниц prinzip.su.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractPrice определяет тип страницы по ссылке и достает из HTML цену.
func (e *Extractor) ExtractPrice(ctx context.Context, html, sourceURL string) domain.PriceResult {
	kind := domain.ClassifyListing(sourceURL)
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":    "PriceExtractor",
		"listing_kind": kind.String(),
		"link":         sourceURL,
	})

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("Failed to parse listing HTML", port.Fields{"error": err.Error()})
		return domain.NoPrice()
	}

	raw, err := strategyFor(kind).findRawPrice(doc, domain.ListingIdentifier(sourceURL))
	if err != nil {
		logger.Debug("Price node not found", port.Fields{"reason": err.Error()})
		return domain.NoPrice()
	}

	return domain.PriceOf(NormalizePrice(raw))
}

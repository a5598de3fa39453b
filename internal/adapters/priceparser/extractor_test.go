package priceparser

import (
	"context"
	"strings"
	"testing"

	"subscription-service/internal/core/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apartmentPage = `<!DOCTYPE html>
<html><body>
  <div class="card-flat" data-id-flat="1042">
    <div class="card-flat__price card-flat__price-current">9&nbsp;999&nbsp;999 ₽</div>
  </div>
  <div class="card-flat" data-id-flat="42">
    <div class="card-flat__price-old">6&nbsp;000&nbsp;000 ₽</div>
    <div class="card-flat__price-current">
      <span>5&nbsp;200&nbsp;000</span> ₽
    </div>
  </div>
</body></html>`

const housePage = `<html><body>
  <a class="flat-link" data-house="house-7781" href="/houses/7781">
    <span class="flat-link-body__title">Дом 7781</span>
    <span class="flat-link-body__price">12&nbsp;500&nbsp;000 ₽</span>
  </a>
</body></html>`

func TestExtractApartmentPrice(t *testing.T) {
	page := strings.Replace(apartmentPage, `data-id-flat="1042"`, `data-id-flat="100"`, 1)

	res := NewExtractor().ExtractPrice(context.Background(), page, "https://prinzip.su/apartments/42")

	require.True(t, res.Available())
	assert.Equal(t, "5 200 000 ₽", res.String())
}

func TestExtractTakesFirstMatchForAmbiguousIdentifier(t *testing.T) {
	// "42" содержится и в "1042": берется первый узел в порядке документа
	res := NewExtractor().ExtractPrice(context.Background(), apartmentPage, "https://prinzip.su/apartments/42")

	assert.Equal(t, "9 999 999 ₽", res.String())
}

func TestExtractHousePrice(t *testing.T) {
	res := NewExtractor().ExtractPrice(context.Background(), housePage, "https://prinzip.su/houses/7781")

	assert.Equal(t, "12 500 000 ₽", res.String())
}

func TestExtractKeepsUnitSuffix(t *testing.T) {
	page := `<div class="card-flat" data-id-flat="42">
  <div class="card-flat__price-current">150&nbsp;000 ₽/м²</div>
</div>`

	res := NewExtractor().ExtractPrice(context.Background(), page, "https://prinzip.su/apartments/42")

	require.True(t, res.Available())
	assert.Equal(t, "150 000 ₽/м²", res.String())
}

func TestExtractUsesOnlyURLShape(t *testing.T) {
	// страница квартиры, но ссылка без "apartments" - используется разметка дома
	res := NewExtractor().ExtractPrice(context.Background(), apartmentPage, "https://prinzip.su/flats/42")

	assert.False(t, res.Available())
}

func TestExtractFallsBackToSentinel(t *testing.T) {
	tests := []struct {
		name string
		html string
		url  string
	}{
		{"empty html", "", "https://prinzip.su/apartments/42"},
		{"malformed html", "<div data-id-flat='42'><div class=", "https://prinzip.su/apartments/42"},
		{"not html at all", "\x00\x01{\"price\": 1}", "https://prinzip.su/houses/1"},
		{"unknown identifier", apartmentPage, "https://prinzip.su/apartments/777"},
		{"card without price node", `<div data-id-flat="42"><span class="card-flat__price-current">1 ₽</span></div>`, "https://prinzip.su/apartments/42"},
		{"price node outside card", `<div data-id-flat="42"></div><div class="card-flat__price-current">1 ₽</div>`, "https://prinzip.su/apartments/42"},
		{"house card is not an anchor", `<div data-house="7"><span class="flat-link-body__price">1 ₽</span></div>`, "https://prinzip.su/houses/7"},
		{"empty price node", `<a data-house="7"><span class="flat-link-body__price">&nbsp;</span></a>`, "https://prinzip.su/houses/7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewExtractor().ExtractPrice(context.Background(), tt.html, tt.url)
			assert.False(t, res.Available())
			assert.Equal(t, domain.NoDataPrice, res.String())
		})
	}
}

func TestStrategiesAreIndependent(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(housePage))
	require.NoError(t, err)

	raw, err := houseStrategy.findRawPrice(doc, "7781")
	require.NoError(t, err)
	assert.Equal(t, "12\u00a0500\u00a0000 ₽", raw)

	_, err = apartmentStrategy.findRawPrice(doc, "7781")
	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, apartmentStrategy, strategyFor(domain.ListingApartment))
	assert.Equal(t, houseStrategy, strategyFor(domain.ListingHouse))
}

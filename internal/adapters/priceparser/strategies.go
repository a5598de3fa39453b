package priceparser

import (
	"fmt"
	"strings"
	"subscription-service/internal/core/domain"

	"github.com/PuerkitoBio/goquery"
)

// cardStrategy описывает, как найти цену на странице одного типа:
// карточка объекта ищется по атрибуту с идентификатором, цена - по классу внутри карточки.
// Оба сравнения - "содержит подстроку", берется первое совпадение в порядке документа.
type cardStrategy struct {
	cardTag    string
	cardAttr   string
	priceTag   string
	priceClass string
}

// Разметка prinzip.su. Если сайт поменяет верстку, цена станет NoDataPrice.
var (
	apartmentStrategy = cardStrategy{
		cardTag:    "div",
		cardAttr:   "data-id-flat",
		priceTag:   "div",
		priceClass: "card-flat__price-current",
	}
	houseStrategy = cardStrategy{
		cardTag:    "a",
		cardAttr:   "data-house",
		priceTag:   "span",
		priceClass: "flat-link-body__price",
	}
)

func strategyFor(kind domain.ListingKind) cardStrategy {
	if kind == domain.ListingApartment {
		return apartmentStrategy
	}
	return houseStrategy
}

// findRawPrice возвращает текст узла с ценой без нормализации.
func (s cardStrategy) findRawPrice(doc *goquery.Document, id string) (string, error) {
	card := firstWithAttrContaining(doc.Selection, s.cardTag, s.cardAttr, id)
	if card.Length() == 0 {
		return "", fmt.Errorf("%w: no <%s> with %s containing %q", domain.ErrExtraction, s.cardTag, s.cardAttr, id)
	}

	price := firstWithAttrContaining(card, s.priceTag, "class", s.priceClass)
	if price.Length() == 0 {
		return "", fmt.Errorf("%w: no <%s> with class containing %q", domain.ErrExtraction, s.priceTag, s.priceClass)
	}

	return price.Text(), nil
}

func firstWithAttrContaining(root *goquery.Selection, tag, attr, substr string) *goquery.Selection {
	return root.Find(tag + "[" + attr + "]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		value, _ := sel.Attr(attr)
		return strings.Contains(value, substr)
	}).First()
}

package domain

import "strings"

// NoDataPrice - строка, которую получает клиент, если цену определить не удалось.
const NoDataPrice = "no data available"

// PriceResult - результат извлечения цены: либо нормализованная цена, либо "нет данных".
type PriceResult struct {
	value string
	ok    bool
}

// PriceOf создает успешный результат. Пустая строка считается отсутствием цены.
func PriceOf(value string) PriceResult {
	if value == "" {
		return NoPrice()
	}
	return PriceResult{value: value, ok: true}
}

// NoPrice - вариант "нет данных".
func NoPrice() PriceResult {
	return PriceResult{}
}

// Available сообщает, удалось ли извлечь цену.
func (p PriceResult) Available() bool {
	return p.ok
}

// String сворачивает результат в строку для отображения.
func (p PriceResult) String() string {
	if !p.ok {
		return NoDataPrice
	}
	return p.value
}

// ListingKind - тип страницы объекта, от которого зависит разметка с ценой.
type ListingKind int

const (
	ListingHouse ListingKind = iota
	ListingApartment
)

func (k ListingKind) String() string {
	switch k {
	case ListingApartment:
		return "apartment"
	default:
		return "house"
	}
}

// ClassifyListing выбирает тип страницы только по виду ссылки.
// Содержимое страницы не анализируется.
func ClassifyListing(link string) ListingKind {
	if strings.Contains(link, "apartments") {
		return ListingApartment
	}
	return ListingHouse
}

// ListingIdentifier возвращает все, что идет после последнего "/".
func ListingIdentifier(link string) string {
	return link[strings.LastIndex(link, "/")+1:]
}

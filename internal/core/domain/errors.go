package domain

import "errors"

// Ошибки, которые возвращают use cases и адаптеры.
// REST-слой сопоставляет их с ответами через errors.Is.
var (
	ErrValidation  = errors.New("invalid link or email")
	ErrUnreachable = errors.New("link is unreachable")
	ErrDuplicate   = errors.New("already subscribed")
	ErrNotFound    = errors.New("subscription not found")

	// Ошибки обновления цены. Наружу не выходят: на уровне строки
	// превращаются в NoDataPrice.
	ErrFetch      = errors.New("failed to fetch listing page")
	ErrExtraction = errors.New("failed to extract price")
)

package port

import (
	"subscription-service/internal/core/domain"
	"time"
)

// MetricsPort собирает счетчики по работе ядра.
type MetricsPort interface {
	ObserveFetch(success bool, duration time.Duration)
	ObserveExtraction(kind domain.ListingKind, found bool)
	ObserveSubscribe(outcome string)
}

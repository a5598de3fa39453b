package metrics

import (
	"net/http"
	"strconv"
	"time"

	"subscription-service/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusMetrics реализует MetricsPort на собственном реестре
type PrometheusMetrics struct {
	registry *prometheus.Registry

	fetchTotal      *prometheus.CounterVec
	fetchDuration   prometheus.Histogram
	extractionTotal *prometheus.CounterVec
	subscribeTotal  *prometheus.CounterVec
}

func NewPrometheusMetrics(namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_fetch_total",
			Help:      "Listing page fetches by outcome.",
		}, []string{"success"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "page_fetch_duration_seconds",
			Help:      "Listing page fetch latency.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		extractionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "price_extraction_total",
			Help:      "Price extractions by listing kind and result.",
		}, []string{"kind", "found"}),
		subscribeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscribe_total",
			Help:      "Subscribe requests by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		m.fetchTotal,
		m.fetchDuration,
		m.extractionTotal,
		m.subscribeTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *PrometheusMetrics) ObserveFetch(success bool, duration time.Duration) {
	m.fetchTotal.WithLabelValues(strconv.FormatBool(success)).Inc()
	m.fetchDuration.Observe(duration.Seconds())
}

func (m *PrometheusMetrics) ObserveExtraction(kind domain.ListingKind, found bool) {
	m.extractionTotal.WithLabelValues(kind.String(), strconv.FormatBool(found)).Inc()
}

func (m *PrometheusMetrics) ObserveSubscribe(outcome string) {
	m.subscribeTotal.WithLabelValues(outcome).Inc()
}

// Handler отдает метрики в формате Prometheus
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

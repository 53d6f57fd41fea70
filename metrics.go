package siripush

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	messagesReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "siripush_messages_received_total",
		Help: "Pushed messages ingested, by classified payload kind.",
	}, []string{"type"})

	messagesEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "siripush_messages_evicted_total",
		Help: "History entries dropped because a subscription bucket was full.",
	})

	deliveryDelaySeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "siripush_delivery_delay_seconds",
		Help:    "Latency between the upstream response timestamp and local receipt.",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 14),
	})

	pushRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "siripush_push_rate_limited_total",
		Help: "Webhook requests rejected by the rate limiter.",
	})
)

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

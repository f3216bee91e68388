package metrics

import (
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ots_http_requests_total",
		Help: "Handled HTTP requests by operation and status code.",
	}, []string{"operation", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ots_http_request_duration_seconds",
		Help:    "HTTP request latency by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)

// Middleware counts requests per operation; operation IDs keep label cardinality bounded.
func Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		start := time.Now()

		next(ctx)

		op := ctx.Operation().OperationID
		requestsTotal.WithLabelValues(op, strconv.Itoa(ctx.Status())).Inc()
		requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

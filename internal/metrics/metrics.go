// Package metrics exposes Prometheus counters for the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bidboard_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "status"})

	RateLimitDenials = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bidboard_rate_limit_denials_total",
		Help: "Requests rejected by the rate limiter.",
	})
)

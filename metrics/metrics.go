package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_calculations_total",
			Help: "Total number of completed calculations",
		},
		[]string{"kind"},
	)

	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_calculation_errors_total",
			Help: "Total number of rejected calculation requests",
		},
		[]string{"kind", "code"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fincalc_calculation_duration_seconds",
			Help:    "Duration of a calculation including cache and persistence",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"kind"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_cache_lookups_total",
			Help: "Cache lookups by outcome",
		},
		[]string{"kind", "result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fincalc_http_requests_total",
			Help: "HTTP requests by path and status code",
		},
		[]string{"path", "status"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fincalc_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "momentum_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "momentum_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"endpoint"})

	checkInsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "momentum_checkins_total",
		Help: "Check-in attempts by outcome",
	}, []string{"outcome"})
)

// MetricsMiddleware records request counts and latencies per route template.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		requestsTotal.WithLabelValues(endpoint, httpStatusBucket(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes the prometheus registry.
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// ObserveCheckIn counts check-in outcomes.
func ObserveCheckIn(accepted bool) {
	outcome := "accepted"
	if !accepted {
		outcome = "duplicate"
	}
	checkInsTotal.WithLabelValues(outcome).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

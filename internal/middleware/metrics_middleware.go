package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "creatorflow_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "creatorflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	dealsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "creatorflow_deals_created_total",
			Help: "Total number of deals created",
		},
	)

	cascadeDeletedDealsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "creatorflow_cascade_deleted_deals_total",
			Help: "Total number of deals removed together with their brand",
		},
	)
)

// Metrics records request counts and latencies by route template, so ids in
// paths do not explode label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordDealCreated increments the deal creation counter.
func RecordDealCreated() {
	dealsCreatedTotal.Inc()
}

// RecordCascadeDelete adds the number of deals removed with a brand.
func RecordCascadeDelete(deals int) {
	if deals > 0 {
		cascadeDeletedDealsTotal.Add(float64(deals))
	}
}

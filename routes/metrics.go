package routes

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestDuration *prometheus.HistogramVec

	// PublicationWrites zählt erfolgreiche Schreiboperationen je Art (created/updated/deleted).
	PublicationWrites *prometheus.CounterVec

	// SnapshotsUploaded zählt erfolgreich hochgeladene Katalog-Snapshots.
	SnapshotsUploaded prometheus.Counter
)

func init() {
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route and status.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
	PublicationWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "publication_writes_total",
			Help: "Total number of successful publication writes.",
		},
		[]string{"operation"},
	)
	SnapshotsUploaded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_snapshots_uploaded_total",
			Help: "Total number of catalog snapshots uploaded to object storage.",
		},
	)
	prometheus.MustRegister(requestDuration, PublicationWrites, SnapshotsUploaded)
}

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

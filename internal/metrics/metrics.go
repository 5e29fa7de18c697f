package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReqCount counts HTTP requests by method, route and status.
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReqDuration observes request latency per route.
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fitness_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// WSConnections tracks currently open notification channel clients.
	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitness_ws_connections",
			Help: "Open websocket connections",
		},
	)

	// WSMessages counts broadcast messages by event type.
	WSMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitness_ws_messages_total",
			Help: "Broadcast websocket messages",
		},
		[]string{"type"},
	)

	// WSDropped counts inbound frames discarded for malformed or unknown
	// payloads.
	WSDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitness_ws_dropped_total",
			Help: "Discarded inbound websocket frames",
		},
	)
)

// Register registers all collectors with the default registry. Call once
// during application startup.
func Register() {
	prometheus.MustRegister(ReqCount, ReqDuration, WSConnections, WSMessages, WSDropped)
}

// Middleware records request counts and latency for every route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		ReqCount.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		ReqDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

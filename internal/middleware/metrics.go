package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedCacheHits counts full-page feed cache hits.
	FeedCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_feed_cache_hits_total",
		Help: "Total number of feed page cache hits",
	})

	// FeedCacheMisses counts full-page feed cache misses.
	FeedCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_feed_cache_misses_total",
		Help: "Total number of feed page cache misses",
	})

	// WebSocketConnections is the gauge of active feed stream connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inkwell_websocket_connections",
		Help: "Number of active feed websocket connections",
	})

	// FollowOperations counts follow manager outcomes by operation and result.
	FollowOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_follow_operations_total",
		Help: "Total follow/unfollow operations by outcome",
	}, []string{"operation", "outcome"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the Fiber handler recording HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

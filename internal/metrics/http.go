package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "send",
			Subsystem: "server",
			Name:      "http_requests_total",
			Help:      "Requests by route, including websocket upgrades",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "send",
			Subsystem: "server",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of plain HTTP routes; upgraded connections are excluded",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "send",
			Subsystem: "server",
			Name:      "http_errors_total",
			Help:      "Responses with status >= 500",
		},
		[]string{"method", "path", "status"},
	)
)

// HTTPMiddleware instruments every echo route. Routes are labeled by their
// registered pattern ("/ws", "/healthz") to keep cardinality bounded. A
// websocket upgrade hijacks the connection, so its handler only returns when
// the session ends; those requests are counted but kept out of the latency
// histogram, where a session lifetime would swamp every bucket. Session
// duration is visible through the sessions_active gauge instead.
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			upgrade := c.IsWebSocket()

			err := next(c)

			path := c.Path()
			if path == "" {
				path = "unknown"
			}
			method := c.Request().Method
			status := c.Response().Status
			if upgrade && !c.Response().Committed {
				// The handshake went out on the hijacked conn, bypassing
				// echo's response writer.
				status = http.StatusSwitchingProtocols
			}
			label := strconv.Itoa(status)

			httpRequestsTotal.WithLabelValues(method, path, label).Inc()
			if !upgrade {
				httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			}
			if status >= http.StatusInternalServerError {
				httpErrorsTotal.WithLabelValues(method, path, label).Inc()
			}

			return err
		}
	}
}

package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ConversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpdfa_conversions_total",
			Help: "Total conversions by outcome",
		},
		[]string{"status"},
	)

	ConversionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "openpdfa_conversion_duration_seconds",
			Help:    "Time to convert a document to PDF/A",
			Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0, 120.0},
		},
	)

	ConversionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "openpdfa_conversions_active",
			Help: "Number of conversions currently running",
		},
	)

	ProcessKillsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "openpdfa_gs_kills_total",
			Help: "Ghostscript process trees killed on timeout or cancellation",
		},
	)

	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "openpdfa_cache_hits_total",
			Help: "Conversions served from the result cache",
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openpdfa_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		ConversionsTotal,
		ConversionDuration,
		ConversionsActive,
		ProcessKillsTotal,
		CacheHitsTotal,
		HTTPRequestsTotal,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// EchoMiddleware returns Echo middleware that instruments HTTP requests.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			HTTPRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Inc()

			return err
		}
	}
}

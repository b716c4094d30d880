package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgpulse_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "status"},
	)

	RateLimitRejections = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgpulse_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"path"},
	)

	AutosaveOutcomes = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orgpulse_autosave_outcomes_total",
			Help: "Draft autosave attempts by outcome",
		},
		[]string{"outcome"}, // saved, error, conflict
	)
)

// Handler serves the registry through the fiber/fasthttp stack.
func Handler() fasthttp.RequestHandler {
	return fasthttpadaptor.NewFastHTTPHandler(
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	)
}

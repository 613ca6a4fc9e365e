package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call labels
const (
	CallChat     = "chat"
	CallImage    = "image"
	CallDownload = "download"
)

var (
	recipeRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_requests_total",
		Help: "Recipe generation requests by outcome",
	}, []string{"outcome"})
	upstreamDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recipe_upstream_request_duration_seconds",
		Help:    "Latency of calls to the model provider",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
	}, []string{"call"})
	upstreamErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recipe_upstream_errors_total",
		Help: "Failed calls to the model provider",
	}, []string{"call"})
	rateLimited = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recipe_rate_limited_total",
		Help: "Requests rejected by the rate limiter",
	})
)

func init() {
	prometheus.MustRegister(recipeRequests, upstreamDuration, upstreamErrors, rateLimited)
}

// Handler exposes the default registry
func Handler() http.Handler { return promhttp.Handler() }

// IncRecipe counts a finished recipe request as success or error
func IncRecipe(err error) {
	if err != nil {
		recipeRequests.WithLabelValues("error").Inc()
		return
	}
	recipeRequests.WithLabelValues("success").Inc()
}

// ObserveUpstream records the latency of a provider call started at start.
func ObserveUpstream(call string, start time.Time, err error) {
	upstreamDuration.WithLabelValues(call).Observe(time.Since(start).Seconds())
	if err != nil {
		upstreamErrors.WithLabelValues(call).Inc()
	}
}

// IncRateLimited counts a request rejected by the rate limiter
func IncRateLimited() { rateLimited.Inc() }

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exports Recorder events as Prometheus metrics.
type PrometheusRecorder struct {
	backings        *prometheus.CounterVec
	backingAmount   prometheus.Histogram
	projectEvents   *prometheus.CounterVec
	usersRegistered prometheus.Counter
	logins          *prometheus.CounterVec
	categoryCache   *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus creates a PrometheusRecorder and registers its collectors.
func NewPrometheus(reg prometheus.Registerer) *PrometheusRecorder {
	p := &PrometheusRecorder{
		backings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fundhive_backings_total",
			Help: "Backing attempts by outcome",
		}, []string{"status"}),
		backingAmount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundhive_backing_amount",
			Help:    "Amount of successful backings in whole currency units",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),
		projectEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fundhive_project_events_total",
			Help: "Project lifecycle events",
		}, []string{"event"}),
		usersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fundhive_users_registered_total",
			Help: "Number of registered users",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fundhive_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"success"}),
		categoryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fundhive_category_cache_total",
			Help: "Category count cache lookups by result",
		}, []string{"result"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fundhive_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(
		p.backings,
		p.backingAmount,
		p.projectEvents,
		p.usersRegistered,
		p.logins,
		p.categoryCache,
		p.httpDuration,
	)

	return p
}

// IncBacking records a backing attempt.
func (p *PrometheusRecorder) IncBacking(status string) {
	p.backings.WithLabelValues(status).Inc()
}

// ObserveBackingAmount records the amount of a successful backing.
func (p *PrometheusRecorder) ObserveBackingAmount(amount int64) {
	p.backingAmount.Observe(float64(amount))
}

// IncProjectCreated records a created project.
func (p *PrometheusRecorder) IncProjectCreated() {
	p.projectEvents.WithLabelValues("created").Inc()
}

// IncProjectUpdated records an updated project.
func (p *PrometheusRecorder) IncProjectUpdated() {
	p.projectEvents.WithLabelValues("updated").Inc()
}

// IncProjectDeleted records a deleted project.
func (p *PrometheusRecorder) IncProjectDeleted() {
	p.projectEvents.WithLabelValues("deleted").Inc()
}

// IncUserRegistered records a registration.
func (p *PrometheusRecorder) IncUserRegistered() {
	p.usersRegistered.Inc()
}

// IncLogin records a login attempt.
func (p *PrometheusRecorder) IncLogin(success bool) {
	p.logins.WithLabelValues(strconv.FormatBool(success)).Inc()
}

// IncCategoryCacheHit records a cache hit.
func (p *PrometheusRecorder) IncCategoryCacheHit() {
	p.categoryCache.WithLabelValues("hit").Inc()
}

// IncCategoryCacheMiss records a cache miss.
func (p *PrometheusRecorder) IncCategoryCacheMiss() {
	p.categoryCache.WithLabelValues("miss").Inc()
}

// ObserveHTTPRequest records request latency keyed by route pattern.
func (p *PrometheusRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	p.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// Handler returns the scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

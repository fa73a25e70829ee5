package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec   // requests served, by route and status
	HTTPDuration     *prometheus.HistogramVec // request latency, by route
	Rejections       *prometheus.CounterVec   // submissions refused by a business rule
	ReportGeneration *prometheus.HistogramVec // time spent rendering workbooks
}

// NewMetrics registers every collector on reg. Passing a fresh registry
// keeps tests isolated from the global one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ems_http_requests_total",
			Help: "Total number of HTTP requests served",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ems_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Rejections: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ems_validation_rejections_total",
			Help: "Submissions rejected by a validation rule",
		}, []string{"entity", "field", "rule"}), // entity: employee, timesheet
		ReportGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "ems_report_generation_duration_seconds",
			Help: "Duration of excel report generation.",
		}, []string{"report"}),
	}
}

func (m *Metrics) ObserveRejection(entity, field, rule string) {
	m.Rejections.WithLabelValues(entity, field, rule).Inc()
}

func (m *Metrics) ObserveReport(name string, d time.Duration) {
	m.ReportGeneration.WithLabelValues(name).Observe(d.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

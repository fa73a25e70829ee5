package metrics_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	m := metrics.NewMetrics(reg)

	m.ObserveRejection("timesheet", "end_time", "time_order")
	m.ObserveRejection("timesheet", "end_time", "time_order")
	m.ObserveRejection("employee", "salary", "min_salary")
	assert.InDelta(t, 2, testutil.ToFloat64(m.Rejections.WithLabelValues("timesheet", "end_time", "time_order")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Rejections.WithLabelValues("employee", "salary", "min_salary")), 0)

	m.ObserveRequest(http.MethodGet, "/employees", http.StatusOK, 20*time.Millisecond)
	assert.InDelta(t, 1, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/employees", "200")), 0)

	m.ObserveReport("timesheets", time.Second)
	assert.Equal(t, 1, testutil.CollectAndCount(m.ReportGeneration))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = metrics.NewMetrics(prometheus.NewRegistry())
		_ = metrics.NewMetrics(prometheus.NewRegistry())
	})
}

package handler

import (
	"errors"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsEngine(g prometheus.Gatherer) *route.Engine {
	engine := route.NewEngine(config.NewOptions([]config.Option{}))
	engine.GET("/metrics", Metrics(g))
	return engine
}

func TestMetricsText(t *testing.T) {
	registry := prometheus.NewRegistry()
	leases := prometheus.NewCounter(prometheus.CounterOpts{Name: "fgdb_test_leases_total", Help: "Leases."})
	registry.MustRegister(leases)
	leases.Add(3)

	w := ut.PerformRequest(metricsEngine(registry), "GET", "/metrics", nil)
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())
	assert.Contains(t, string(resp.Header.ContentType()), "text/plain")
	assert.Contains(t, string(resp.Body()), "fgdb_test_leases_total 3")
}

func TestMetricsOpenMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: "fgdb_test_gauge", Help: "Gauge."}))

	w := ut.PerformRequest(metricsEngine(registry), "GET", "/metrics", nil,
		ut.Header{Key: "Accept", Value: "application/openmetrics-text; version=1.0.0"})
	resp := w.Result()
	require.Equal(t, 200, resp.StatusCode())
	assert.Contains(t, string(resp.Header.ContentType()), "application/openmetrics-text")
	assert.Contains(t, string(resp.Body()), "# EOF")
}

func TestMetricsGatherError(t *testing.T) {
	broken := prometheus.GathererFunc(func() ([]*dto.MetricFamily, error) {
		return nil, errors.New("collector broke")
	})
	w := ut.PerformRequest(metricsEngine(broken), "GET", "/metrics", nil)
	assert.Equal(t, 500, w.Result().StatusCode())
}

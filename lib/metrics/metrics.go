// Package metrics exposes SAI driver and syncd counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cn-pmlabs/gosai/sai"
)

const namespace = "gosai"

// Metrics holds the collectors and the registry they belong to.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	apiCalls   *prometheus.CounterVec
	objects    *prometheus.GaugeVec
	rowUpdates *prometheus.CounterVec
}

// New create collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sai_api_calls_total",
			Help:      "SAI method table calls by api, operation and status.",
		}, []string{"api", "op", "status"}),
		objects: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sai_objects",
			Help:      "Live SAI objects by object type.",
		}, []string{"type"}),
		rowUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "syncd_row_updates_total",
			Help:      "ASIC DB row updates processed by table, operation and result.",
		}, []string{"table", "op", "result"}),
	}
	m.registry.MustRegister(m.apiCalls, m.objects, m.rowUpdates)
	m.registry.MustRegister(collectors.NewGoCollector())
	return m
}

// ObserveCall count one SAI call
func (m *Metrics) ObserveCall(api sai.APIID, op string, err error) {
	if m == nil {
		return
	}
	m.apiCalls.WithLabelValues(api.String(), op, sai.StatusOf(err).String()).Inc()
}

// SetObjects set the live object gauge of t
func (m *Metrics) SetObjects(t sai.ObjectType, n int) {
	if m == nil {
		return
	}
	m.objects.WithLabelValues(t.String()).Set(float64(n))
}

// ObserveRowUpdate count one processed ASIC DB row update
func (m *Metrics) ObserveRowUpdate(table, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.rowUpdates.WithLabelValues(table, op, result).Inc()
}

// Registry used by tests and custom exporters
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serve the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

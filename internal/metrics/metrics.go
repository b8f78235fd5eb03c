package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "invsim"

// Metrics holds the simulation counters on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	OrdersPlaced   prometheus.Counter
	ShortageUnits  prometheus.Counter
	DeferredOrders prometheus.Counter
	SweepPoints    prometheus.Counter
}

// New creates a Metrics instance with the standard Go and process collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of simulation runs",
		},
		[]string{"surface", "outcome"},
	)

	m.RunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Simulation run duration in seconds",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		},
		[]string{"surface"},
	)

	m.OrdersPlaced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Replenishment orders placed across all runs",
	})

	m.ShortageUnits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shortage_units_total",
		Help:      "Units of unmet demand across all runs",
	})

	m.DeferredOrders = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deferred_orders_total",
		Help:      "Orders skipped because the lead time digits ran out",
	})

	m.SweepPoints = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sweep_points_total",
		Help:      "Policy combinations evaluated by sweeps",
	})

	registry.MustRegister(m.RunsTotal, m.RunDuration, m.OrdersPlaced, m.ShortageUnits, m.DeferredOrders, m.SweepPoints)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRun counts one finished run and its policy events.
func (m *Metrics) RecordRun(surface string, duration time.Duration, orders, shortageUnits, deferred int) {
	m.RunsTotal.WithLabelValues(surface, "ok").Inc()
	m.RunDuration.WithLabelValues(surface).Observe(duration.Seconds())
	m.OrdersPlaced.Add(float64(orders))
	m.ShortageUnits.Add(float64(shortageUnits))
	m.DeferredOrders.Add(float64(deferred))
}

// RecordRejected counts a configuration that never reached the simulator.
func (m *Metrics) RecordRejected(surface string) {
	m.RunsTotal.WithLabelValues(surface, "rejected").Inc()
}

// Package metrics provides Prometheus instrumentation for the inventory
// service. Mount Handler on the ops HTTP router and scrape /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionsActive tracks how many client sessions are currently open.
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "inventory",
		Subsystem: "tcp",
		Name:      "sessions_active",
		Help:      "Number of client sessions currently open.",
	})

	// SessionsTotal counts all accepted client connections.
	SessionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "inventory",
		Subsystem: "tcp",
		Name:      "sessions_total",
		Help:      "Total number of accepted client connections.",
	})

	// CommandsTotal counts dispatched commands by name and outcome.
	CommandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inventory",
			Subsystem: "tcp",
			Name:      "commands_total",
			Help:      "Total number of dispatched commands.",
		},
		[]string{"command", "status"}, // status: "ok" | "fault"
	)

	// CommandDuration tracks how long each command takes end to end,
	// from decoded request to flushed response.
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "inventory",
			Subsystem: "tcp",
			Name:      "command_duration_seconds",
			Help:      "Duration of command handling in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"command"},
	)
)

// DefaultRegistry is the Prometheus registry used by the service.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	// Go runtime metrics (GC, goroutines, memory)
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	// OS process metrics (CPU, open FDs)
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		SessionsActive,
		SessionsTotal,
		CommandsTotal,
		CommandDuration,
	)
}

// ObserveCommand records one dispatched command.
func ObserveCommand(command, status string, start time.Time) {
	CommandsTotal.WithLabelValues(command, status).Inc()
	CommandDuration.WithLabelValues(command).Observe(time.Since(start).Seconds())
}

// Handler returns an http.HandlerFunc that exposes the Prometheus metrics page.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

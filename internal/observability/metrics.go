// Package observability provides Prometheus metrics and the operational HTTP
// endpoints that expose them.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the bot's Prometheus collectors behind helper methods so
// callers never touch label plumbing directly.
type Metrics struct {
	registry *prometheus.Registry

	commandInvocations *prometheus.CounterVec
	commandOutcomes    *prometheus.CounterVec
	providerErrors     *prometheus.CounterVec
	cacheLookups       *prometheus.CounterVec
	selectionOutcomes  *prometheus.CounterVec
	commandDuration    *prometheus.HistogramVec
}

// NewMetrics creates a metrics bundle backed by its own registry, so tests
// can create as many instances as they like without collisions.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		commandInvocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_command_invocations_total",
			Help: "Number of command invocations received, by command name.",
		}, []string{"command"}),
		commandOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_command_outcomes_total",
			Help: "Command completions by command name and outcome.",
		}, []string{"command", "outcome"}),
		providerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_provider_errors_total",
			Help: "Upstream provider failures by originating command and error kind.",
		}, []string{"command", "kind"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_cache_lookups_total",
			Help: "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		selectionOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bot_place_selection_outcomes_total",
			Help: "Place selection results by outcome.",
		}, []string{"outcome"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bot_command_duration_seconds",
			Help:    "Wall-clock command handling duration, by command name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
	}

	registry.MustRegister(
		m.commandInvocations,
		m.commandOutcomes,
		m.providerErrors,
		m.cacheLookups,
		m.selectionOutcomes,
		m.commandDuration,
	)

	return m
}

// Handler returns an HTTP handler serving the metrics in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordInvocation counts one received command invocation.
func (m *Metrics) RecordInvocation(command string) {
	m.commandInvocations.WithLabelValues(command).Inc()
}

// RecordOutcome counts one finished command with its outcome label
// ("ok" or "error").
func (m *Metrics) RecordOutcome(command, outcome string) {
	m.commandOutcomes.WithLabelValues(command, outcome).Inc()
}

// RecordProviderError counts one upstream failure.
func (m *Metrics) RecordProviderError(command, kind string) {
	m.providerErrors.WithLabelValues(command, kind).Inc()
}

// RecordCacheLookup counts one cache lookup as a hit or miss.
func (m *Metrics) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}

	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

// RecordSelection counts one place selection outcome
// ("unique", "chosen", "aborted", "failed").
func (m *Metrics) RecordSelection(outcome string) {
	m.selectionOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveCommandDuration records how long one command invocation took.
func (m *Metrics) ObserveCommandDuration(command string, seconds float64) {
	m.commandDuration.WithLabelValues(command).Observe(seconds)
}

package observability

import (
	"context"

	"github.com/nagarniyantran/civicnav/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "civicnav"

// Metrics holds the Prometheus collectors of the navigation service.
type Metrics struct {
	registry *prometheus.Registry

	transitions   *prometheus.CounterVec
	fallbacks     *prometheus.CounterVec
	logins        *prometheus.CounterVec
	activeStreams prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a private registry,
// so several instances can coexist in tests.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Total number of applied navigation transitions that changed the state.",
			},
			[]string{"kind", "to"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fallbacks_total",
				Help:      "Total number of back navigations resolved by the fallback policy.",
			},
			[]string{"to"},
		),
		logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total number of logins by role.",
			},
			[]string{"role"},
		),
		activeStreams: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_streams",
				Help:      "Current number of open state streams.",
			},
		),
	}
	m.registry.MustRegister(m.transitions, m.fallbacks, m.logins, m.activeStreams)
	return m
}

// Registry returns the registry holding the collectors, for promhttp.HandlerFor.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Hooks returns lifecycle hooks that record every transition.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			if !e.Changed {
				return
			}
			m.transitions.WithLabelValues(string(e.Kind), string(e.To)).Inc()
		},
		OnFallback: func(_ context.Context, e *domain.TransitionEvent) {
			m.fallbacks.WithLabelValues(string(e.To)).Inc()
		},
		OnLogin: func(_ context.Context, e *domain.TransitionEvent) {
			m.logins.WithLabelValues(string(e.Role)).Inc()
		},
	}
}

// StreamOpened increments the open stream gauge.
func (m *Metrics) StreamOpened() {
	m.activeStreams.Inc()
}

// StreamClosed decrements the open stream gauge.
func (m *Metrics) StreamClosed() {
	m.activeStreams.Dec()
}

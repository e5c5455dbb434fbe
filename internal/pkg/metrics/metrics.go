// Package metrics exposes reconciliation counters in Prometheus format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang-netenforce/internal/pkg/logging"
	"golang-netenforce/internal/types"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "netenforce"

// Config controls the optional metrics endpoint.
type Config struct {
	Enabled       bool   `yaml:"enabled"`
	ListenAddress string `yaml:"listen_address" validate:"required_if=Enabled true"`
	Path          string `yaml:"path" validate:"required_if=Enabled true"`
}

// Metrics records reconciliation outcomes. A nil *Metrics, or one built from
// a disabled config, records nothing.
type Metrics struct {
	config Config

	ticks               *prometheus.CounterVec
	enforcements        *prometheus.CounterVec
	observationFailures *prometheus.CounterVec
	enforcementDuration *prometheus.HistogramVec
	lastTick            prometheus.Gauge

	registry *prometheus.Registry
}

// New creates the metrics collectors for cfg.
func New(cfg Config) *Metrics {
	if !cfg.Enabled {
		return &Metrics{config: cfg}
	}

	registry := prometheus.NewRegistry()
	m := &Metrics{
		config:   cfg,
		registry: registry,

		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ticks_total",
				Help:      "Reconciliation ticks by classification",
			},
			[]string{"divergence"},
		),
		enforcements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "enforcements_total",
				Help:      "Enforcement attempts by action and result",
			},
			[]string{"action", "result"},
		),
		observationFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "observation_failures_total",
				Help:      "Observations that degraded to no information",
			},
			[]string{"source"},
		),
		enforcementDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "enforcement_duration_seconds",
				Help:      "Duration of enforcement calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		lastTick: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_tick_timestamp_seconds",
				Help:      "Unix time of the last completed tick",
			},
		),
	}

	registry.MustRegister(m.ticks, m.enforcements, m.observationFailures, m.enforcementDuration, m.lastTick)
	return m
}

func (m *Metrics) enabled() bool {
	return m != nil && m.registry != nil
}

// RecordTick counts one completed tick.
func (m *Metrics) RecordTick(divergence types.Divergence) {
	if !m.enabled() {
		return
	}
	m.ticks.WithLabelValues(string(divergence)).Inc()
	m.lastTick.SetToCurrentTime()
}

// RecordEnforcement counts one enforcement call and its duration.
func (m *Metrics) RecordEnforcement(action types.Action, err error, duration time.Duration) {
	if !m.enabled() {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.enforcements.WithLabelValues(string(action), result).Inc()
	m.enforcementDuration.WithLabelValues(string(action)).Observe(duration.Seconds())
}

// RecordObservationFailure counts an observation that returned an error.
func (m *Metrics) RecordObservationFailure(source string) {
	if !m.enabled() {
		return
	}
	m.observationFailures.WithLabelValues(source).Inc()
}

// Handler returns an HTTP handler for the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if !m.enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Serve exposes the metrics endpoint until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context) error {
	if !m.enabled() {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logging.WithComponent("metrics").WithField("address", m.config.ListenAddress).Info("Serving metrics")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

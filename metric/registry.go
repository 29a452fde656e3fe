package metric

import (
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/c360/memocache/errors"
)

// MetricsRegistrar defines the interface for registering cache-specific metrics
type MetricsRegistrar interface {
	RegisterCounter(cacheName, metricName string, counter prometheus.Counter) error
	RegisterGauge(cacheName, metricName string, gauge prometheus.Gauge) error
	RegisterHistogram(cacheName, metricName string, histogram prometheus.Histogram) error
	Unregister(cacheName, metricName string) bool
}

// MetricsRegistry manages the registration and lifecycle of metrics
type MetricsRegistry struct {
	prometheusRegistry *prometheus.Registry
	registeredMetrics  map[string]prometheus.Collector
	mu                 sync.RWMutex
}

// NewMetricsRegistry creates a new metrics registry with Go runtime and
// process collectors pre-registered.
func NewMetricsRegistry() *MetricsRegistry {
	prometheusRegistry := prometheus.NewRegistry()

	registry := &MetricsRegistry{
		prometheusRegistry: prometheusRegistry,
		registeredMetrics:  make(map[string]prometheus.Collector),
	}

	// Add Go runtime metrics
	registry.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return registry
}

// PrometheusRegistry returns the underlying Prometheus registry
func (r *MetricsRegistry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// RegisterCounter registers a counter metric for a cache
func (r *MetricsRegistry) RegisterCounter(cacheName, metricName string, counter prometheus.Counter) error {
	return r.register(cacheName, metricName, "RegisterCounter", counter)
}

// RegisterGauge registers a gauge metric for a cache
func (r *MetricsRegistry) RegisterGauge(cacheName, metricName string, gauge prometheus.Gauge) error {
	return r.register(cacheName, metricName, "RegisterGauge", gauge)
}

// RegisterHistogram registers a histogram metric for a cache
func (r *MetricsRegistry) RegisterHistogram(cacheName, metricName string, histogram prometheus.Histogram) error {
	return r.register(cacheName, metricName, "RegisterHistogram", histogram)
}

// register adds a collector under "cacheName.metricName", rejecting duplicate
// registrations both locally and at the Prometheus level.
func (r *MetricsRegistry) register(cacheName, metricName, operation string, collector prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", cacheName, metricName)

	if _, exists := r.registeredMetrics[key]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("metric %s already registered for cache %s", metricName, cacheName),
			"MetricsRegistry", operation, "duplicate metric registration")
	}

	if err := r.prometheusRegistry.Register(collector); err != nil {
		// Check if it's a duplicate registration error from Prometheus
		var alreadyRegErr prometheus.AlreadyRegisteredError
		if stderrors.As(err, &alreadyRegErr) {
			return errors.WrapInvalid(err, "MetricsRegistry", operation,
				fmt.Sprintf("prometheus conflict for metric %s", metricName))
		}
		return errors.WrapFatal(err, "MetricsRegistry", operation,
			"failed to register collector with prometheus")
	}

	r.registeredMetrics[key] = collector
	return nil
}

// Unregister removes a metric from the registry
func (r *MetricsRegistry) Unregister(cacheName, metricName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := fmt.Sprintf("%s.%s", cacheName, metricName)

	collector, exists := r.registeredMetrics[key]
	if !exists {
		return false
	}

	success := r.prometheusRegistry.Unregister(collector)
	if success {
		delete(r.registeredMetrics, key)
	}

	return success
}

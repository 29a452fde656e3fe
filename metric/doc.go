// Package metric provides Prometheus metrics management for MemoCache.
//
// # Overview
//
// The metric package wraps a dedicated Prometheus registry with duplicate
// registration protection and an HTTP server for scraping. Caches register
// their counters and gauges through MetricsRegistry; the registry also
// carries Go runtime and process collectors.
//
// # Quick Start
//
// Create a registry and attach it to a cache:
//
//	registry := metric.NewMetricsRegistry()
//	c, err := cache.NewLRU[string, int](1000,
//		cache.WithMetrics[string, int](registry, "results"),
//	)
//
// Serve the metrics endpoint:
//
//	server := metric.NewServer(9090, "/metrics", registry)
//	go func() {
//		if err := server.Start(); err != nil {
//			slog.Error("metrics server failed", "error", err)
//		}
//	}()
//	defer server.Stop()
//
// Each metric is keyed by "cacheName.metricName"; registering the same pair
// twice returns a classified invalid error so configuration mistakes surface
// at construction instead of silently overwriting collectors.
package metric

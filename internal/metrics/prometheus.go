// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"fmt"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/metamap/pkg/types"
)

// Prometheus is a Recorder backed by a dedicated Prometheus registry.
type Prometheus struct {
	registry *prom.Registry
	attempts *prom.CounterVec
	seconds  *prom.HistogramVec
}

// NewPrometheus builds a Prometheus recorder with counters and latency
// histograms labeled by resource, operation, hop, and outcome.
func NewPrometheus() *Prometheus {
	labels := []string{"resource", "op", "source_type", "target_type", "success"}
	p := &Prometheus{
		registry: prom.NewRegistry(),
		attempts: prom.NewCounterVec(prom.CounterOpts{
			Name: "metamap_resource_attempts_total",
			Help: "Total number of resource mapping attempts",
		}, labels),
		seconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "metamap_resource_attempt_seconds",
			Help:    "Resource mapping attempt duration in seconds",
			Buckets: prom.DefBuckets,
		}, labels),
	}
	p.registry.MustRegister(p.attempts, p.seconds)
	return p
}

// Record implements Recorder.
func (p *Prometheus) Record(resourceName, opKind string, sourceType, targetType types.OntologyType, elapsed time.Duration, success bool) {
	values := []string{resourceName, opKind, sourceType, targetType, fmt.Sprintf("%t", success)}
	p.attempts.WithLabelValues(values...).Inc()
	p.seconds.WithLabelValues(values...).Observe(elapsed.Seconds())
}

// Serve exposes /metrics and /healthz on addr in a background goroutine.
func (p *Prometheus) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	go func() { _ = http.ListenAndServe(addr, mux) }()
}

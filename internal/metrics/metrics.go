// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics records per-resource attempt outcomes. The in-memory
// Stats recorder feeds resource ordering in the registry; the Prometheus
// recorder exposes the same data for scraping. Recorders are injected
// where needed rather than installed globally.
package metrics

import (
	"sync"
	"time"

	"github.com/pdiddy/metamap/pkg/types"
)

// Recorder receives one record per resource attempt. Implementations must
// be safe for concurrent use.
type Recorder interface {
	Record(resourceName, opKind string, sourceType, targetType types.OntologyType, elapsed time.Duration, success bool)
}

// Noop discards all records.
type Noop struct{}

func (Noop) Record(string, string, types.OntologyType, types.OntologyType, time.Duration, bool) {}

// Multi fans records out to several recorders.
type Multi []Recorder

func (m Multi) Record(resourceName, opKind string, sourceType, targetType types.OntologyType, elapsed time.Duration, success bool) {
	for _, r := range m {
		r.Record(resourceName, opKind, sourceType, targetType, elapsed, success)
	}
}

// ResourceStats aggregates the attempt history of one resource.
type ResourceStats struct {
	Attempts     int64
	Successes    int64
	TotalElapsed time.Duration
}

// SuccessRate returns successes/attempts, or 0 with no attempts.
func (s ResourceStats) SuccessRate() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Attempts)
}

// MeanLatency returns the mean attempt duration, or 0 with no attempts.
func (s ResourceStats) MeanLatency() time.Duration {
	if s.Attempts == 0 {
		return 0
	}
	return s.TotalElapsed / time.Duration(s.Attempts)
}

// Stats is an in-memory Recorder aggregating per-resource totals.
type Stats struct {
	mu         sync.Mutex
	byResource map[string]*ResourceStats
}

// NewStats returns an empty Stats recorder.
func NewStats() *Stats {
	return &Stats{byResource: make(map[string]*ResourceStats)}
}

// Record implements Recorder.
func (s *Stats) Record(resourceName, _ string, _, _ types.OntologyType, elapsed time.Duration, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs, ok := s.byResource[resourceName]
	if !ok {
		rs = &ResourceStats{}
		s.byResource[resourceName] = rs
	}
	rs.Attempts++
	if success {
		rs.Successes++
	}
	rs.TotalElapsed += elapsed
}

// Snapshot returns a copy of the aggregated stats for one resource and
// whether any attempts were recorded for it.
func (s *Stats) Snapshot(resourceName string) (ResourceStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rs, ok := s.byResource[resourceName]
	if !ok {
		return ResourceStats{}, false
	}
	return *rs, true
}

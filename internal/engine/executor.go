// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/metamap/pkg/types"
)

// PathExecutor resolves one source identifier to zero or more target
// identifiers by walking a mapping path hop by hop. Candidates within a hop
// are resolved by a bounded worker pool; hops themselves run strictly in
// order, because each hop consumes the complete output of the previous one.
type PathExecutor struct {
	adapters      map[string]Adapter
	metrics       Recorder
	cache         Cacher
	timeout       time.Duration
	maxConcurrent int

	logMu sync.Mutex
	log   io.Writer
}

// NewPathExecutor builds a PathExecutor over the live adapter set. cache
// may be nil (caching disabled). Warnings are written to w.
func NewPathExecutor(adapters []Adapter, metrics Recorder, cache Cacher, cfg types.EngineConfig, timeout time.Duration, w io.Writer) *PathExecutor {
	byName := make(map[string]Adapter, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}
	maxConc := cfg.MaxConcurrent
	if maxConc <= 0 {
		maxConc = defaultMaxConcurrent
	}
	if w == nil {
		w = io.Discard
	}
	return &PathExecutor{
		adapters:      byName,
		metrics:       metrics,
		cache:         cache,
		timeout:       timeout,
		maxConcurrent: maxConc,
		log:           w,
	}
}

// Execute walks path for sourceID and returns the surviving candidates as
// MappingResults. If any hop yields no candidates at all, the whole run is
// abandoned and an empty list is returned with a nil error; callers
// distinguish "no mapping found" (empty, no error) from a subsystem
// failure (non-nil error).
func (e *PathExecutor) Execute(ctx context.Context, sourceID string, path []types.MappingStep) ([]types.MappingResult, error) {
	if sourceID == "" {
		return nil, fmt.Errorf("source identifier is required")
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("mapping path is empty")
	}

	current := []types.CandidateIdentifier{{ID: sourceID, Confidence: 1.0}}

	for _, step := range path {
		next := e.executeStep(ctx, step, current)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// A failed hop discards all prior work for this identifier.
		if len(next) == 0 {
			return []types.MappingResult{}, nil
		}
		current = next
	}

	results := make([]types.MappingResult, 0, len(current))
	for _, cand := range current {
		metadata := make(map[string]any, len(cand.Metadata)+1)
		for k, v := range cand.Metadata {
			metadata[k] = v
		}
		metadata[types.MetadataPathKey] = cand.Path
		results = append(results, types.MappingResult{
			TargetID:   cand.ID,
			Confidence: cand.Confidence,
			Source:     types.SourceMetamapping,
			Metadata:   metadata,
		})
	}
	return results, nil
}

// executeStep fans the current candidates out to the step's resources.
// Output preserves candidate order, and within one candidate the order
// the winning resource returned its results.
func (e *PathExecutor) executeStep(ctx context.Context, step types.MappingStep, current []types.CandidateIdentifier) []types.CandidateIdentifier {
	expanded := make([][]types.CandidateIdentifier, len(current))

	sem := make(chan struct{}, e.maxConcurrent)
	var wg sync.WaitGroup
	for i, cand := range current {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, cand types.CandidateIdentifier) {
			defer wg.Done()
			defer func() { <-sem }()
			expanded[i] = e.resolveCandidate(ctx, step, cand)
		}(i, cand)
	}
	wg.Wait()

	var next []types.CandidateIdentifier
	for _, part := range expanded {
		next = append(next, part...)
	}
	return next
}

// resolveCandidate tries the step's resources in priority order and stops
// at the first one that returns at least one result. Adapter failures and
// timeouts are logged, recorded as failed attempts, and treated as "no
// result from this resource"; iteration continues with the next resource.
func (e *PathExecutor) resolveCandidate(ctx context.Context, step types.MappingStep, cand types.CandidateIdentifier) []types.CandidateIdentifier {
	for _, res := range step.Resources {
		adapter, ok := e.adapters[res.Name]
		if !ok {
			// Stale binding: the path references a resource that is not
			// in the live adapter set.
			continue
		}

		mappings, err := e.attempt(ctx, adapter, cand.ID, step)
		if err != nil {
			e.warnf("warning: resource %s failed mapping %s (%s -> %s): %v\n",
				res.Name, cand.ID, step.SourceType, step.TargetType, err)
			continue
		}
		if len(mappings) == 0 {
			continue
		}

		out := make([]types.CandidateIdentifier, 0, len(mappings))
		for _, m := range mappings {
			entry := types.PathEntry{
				SourceID:     cand.ID,
				SourceType:   step.SourceType,
				TargetID:     m.TargetID,
				TargetType:   step.TargetType,
				ResourceName: res.Name,
				Confidence:   m.Confidence,
			}
			history := make([]types.PathEntry, len(cand.Path), len(cand.Path)+1)
			copy(history, cand.Path)
			history = append(history, entry)

			out = append(out, types.CandidateIdentifier{
				ID:         m.TargetID,
				Confidence: cand.Confidence * m.Confidence,
				Path:       history,
				Metadata:   mergeMetadata(cand.Metadata, m.Metadata),
			})

			e.storeHop(ctx, cand.ID, step, m)
		}
		return out
	}
	return nil
}

// attempt times one adapter call and reports it to the metrics sink. An
// attempt counts as successful only when it produced at least one result;
// empty responses and errors both record a failure.
func (e *PathExecutor) attempt(ctx context.Context, adapter Adapter, id string, step types.MappingStep) ([]types.Mapping, error) {
	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	mappings, err := adapter.MapEntity(callCtx, id, step.SourceType, step.TargetType)
	elapsed := time.Since(start)

	success := err == nil && len(mappings) > 0
	e.metrics.Record(adapter.Name(), opMap, step.SourceType, step.TargetType, elapsed, success)

	return mappings, err
}

// storeHop writes one hop result to the cache, best effort. Failures are
// logged and never affect the hop.
func (e *PathExecutor) storeHop(ctx context.Context, sourceID string, step types.MappingStep, m types.Mapping) {
	if e.cache == nil {
		return
	}
	err := e.cache.StoreMapping(ctx, sourceID, step.SourceType, m.TargetID, step.TargetType, m.Confidence, m.Metadata)
	if err != nil {
		e.warnf("warning: cache write failed for %s -> %s (%s): %v\n",
			sourceID, m.TargetID, step.TargetType, err)
	}
}

// warnf serializes warning output; resolveCandidate runs concurrently.
func (e *PathExecutor) warnf(format string, args ...any) {
	e.logMu.Lock()
	defer e.logMu.Unlock()
	fmt.Fprintf(e.log, format, args...)
}

// mergeMetadata combines inherited candidate metadata with adapter-supplied
// metadata for the new candidate. Adapter values win on key collision.
func mergeMetadata(inherited, fresh map[string]any) map[string]any {
	if len(inherited) == 0 && len(fresh) == 0 {
		return nil
	}
	merged := make(map[string]any, len(inherited)+len(fresh))
	for k, v := range inherited {
		merged[k] = v
	}
	for k, v := range fresh {
		merged[k] = v
	}
	return merged
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/pdiddy/metamap/pkg/types"
)

// PathFinder discovers the shortest chain of ontology-type hops from a
// source type to a target type for which at least one resource is
// registered per hop.
type PathFinder struct {
	registry      Registry
	maxPathLength int
	maxExpansions int
}

// NewPathFinder builds a PathFinder over the given registry. Zero config
// fields fall back to defaults (3 hops, 10000 expansions).
func NewPathFinder(registry Registry, cfg types.EngineConfig) *PathFinder {
	maxLen := cfg.MaxPathLength
	if maxLen <= 0 {
		maxLen = defaultMaxPathLength
	}
	maxExp := cfg.MaxExpansions
	if maxExp <= 0 {
		maxExp = defaultMaxExpansions
	}
	return &PathFinder{
		registry:      registry,
		maxPathLength: maxLen,
		maxExpansions: maxExp,
	}
}

// searchNode pairs a reached type with the hops that reached it.
type searchNode struct {
	typ  types.OntologyType
	path []types.MappingStep
}

// FindPath runs a breadth-first search over ontology types and returns the
// first (therefore shortest) non-empty path from sourceType to targetType.
// Equal-length alternatives are tie-broken by lexicographic type order, so
// repeated calls against the same registry return the same path.
//
// "No path" is a normal outcome, reported via found=false with a nil error.
// Registry failures and context cancellation propagate as errors.
func (f *PathFinder) FindPath(ctx context.Context, sourceType, targetType types.OntologyType) ([]types.MappingStep, bool, error) {
	if sourceType == "" || targetType == "" {
		return nil, false, fmt.Errorf("source and target ontology types are required")
	}
	// A zero-length path to the same type is never returned.
	if sourceType == targetType {
		return nil, false, nil
	}

	all, err := f.registry.AllOntologyTypes()
	if err != nil {
		return nil, false, fmt.Errorf("listing ontology types: %w", err)
	}
	candidates := make([]types.OntologyType, len(all))
	copy(candidates, all)
	sort.Strings(candidates)

	queue := []searchNode{{typ: sourceType}}
	visited := map[types.OntologyType]bool{sourceType: true}
	expansions := 0

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		node := queue[0]
		queue = queue[1:]

		// Unreachable on the seed node (its path is empty), so every
		// returned path has at least one hop.
		if node.typ == targetType && len(node.path) > 0 {
			return node.path, true, nil
		}
		if len(node.path) >= f.maxPathLength {
			continue
		}

		expansions++
		if expansions > f.maxExpansions {
			// Exploration budget exhausted; treated as "no path".
			return nil, false, nil
		}

		for _, next := range candidates {
			if visited[next] {
				continue
			}
			resources, err := f.registry.ResourcesFor(node.typ, next)
			if err != nil {
				return nil, false, fmt.Errorf("resources for %s -> %s: %w", node.typ, next, err)
			}
			if len(resources) == 0 {
				continue
			}

			extended := make([]types.MappingStep, len(node.path), len(node.path)+1)
			copy(extended, node.path)
			extended = append(extended, types.MappingStep{
				SourceType: node.typ,
				TargetType: next,
				Resources:  resources,
			})

			if next == targetType {
				return extended, true, nil
			}
			visited[next] = true
			queue = append(queue, searchNode{typ: next, path: extended})
		}
	}

	return nil, false, nil
}

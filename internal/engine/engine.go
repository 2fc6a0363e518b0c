// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine implements the metamapping path engine: discovery of an
// indirect translation route between identifier namespaces (PathFinder) and
// its execution against external lookup resources (PathExecutor).
//
// The engine consumes a capability registry, a set of resource adapters, a
// metrics sink, and an optional cache. All collaborators are injected; the
// engine holds no global state.
package engine

import (
	"context"
	"time"

	"github.com/pdiddy/metamap/pkg/types"
)

// Registry exposes the capability table: which ontology types exist and
// which resources can attempt a given hop, in priority order.
type Registry interface {
	// AllOntologyTypes returns every known ontology type. The engine sorts
	// its own copy, so implementations need not guarantee an order.
	AllOntologyTypes() ([]types.OntologyType, error)

	// ResourcesFor returns the resources able to attempt sourceType →
	// targetType, best first. An empty slice means the hop is not served.
	ResourcesFor(sourceType, targetType types.OntologyType) ([]types.ResourceDescriptor, error)
}

// Adapter attempts to map one identifier of a source type to zero or more
// candidates of a target type. Implementations must be safe for concurrent
// use; the executor fans candidates out within a hop.
type Adapter interface {
	Name() string
	MapEntity(ctx context.Context, id string, sourceType, targetType types.OntologyType) ([]types.Mapping, error)
}

// Recorder receives one record per resource attempt. Implementations must
// be safe for concurrent use.
type Recorder interface {
	Record(resourceName, opKind string, sourceType, targetType types.OntologyType, elapsed time.Duration, success bool)
}

// Cacher durably stores a single hop's result. A nil Cacher is a valid
// configuration; the executor then skips cache writes.
type Cacher interface {
	StoreMapping(ctx context.Context, sourceID string, sourceType types.OntologyType, targetID string, targetType types.OntologyType, confidence float64, metadata map[string]any) error
}

// opMap is the operation kind reported to the Recorder for hop attempts.
const opMap = "map"

const (
	defaultMaxPathLength = 3
	defaultMaxExpansions = 10000
	defaultMaxConcurrent = 4
)

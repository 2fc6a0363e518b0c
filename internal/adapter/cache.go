// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package adapter

import (
	"context"

	"github.com/pdiddy/metamap/internal/cache"
	"github.com/pdiddy/metamap/pkg/types"
)

// CacheAdapter serves hops from the local mapping cache, so a hop executed
// once can satisfy later paths without a remote call. The registry binds it
// like any other resource, usually at the highest priority.
type CacheAdapter struct {
	name  string
	store *cache.Store
}

// NewCache wraps a cache store as a resource adapter.
func NewCache(name string, store *cache.Store) *CacheAdapter {
	return &CacheAdapter{name: name, store: store}
}

// Name returns the resource identifier.
func (a *CacheAdapter) Name() string { return a.name }

// MapEntity returns previously cached translations of id.
func (a *CacheAdapter) MapEntity(ctx context.Context, id string, sourceType, targetType types.OntologyType) ([]types.Mapping, error) {
	return a.store.Lookup(ctx, id, sourceType, targetType)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry implements the capability registry: the declarative
// table of lookup resources, the hops each can attempt, and their priority
// order. The registry also constructs the live adapter set and feeds the
// recorded performance history back into resource ordering.
package registry

import (
	"fmt"
	"sort"

	"github.com/pdiddy/metamap/internal/adapter"
	"github.com/pdiddy/metamap/internal/cache"
	"github.com/pdiddy/metamap/internal/engine"
	"github.com/pdiddy/metamap/internal/metrics"
	"github.com/pdiddy/metamap/pkg/types"
)

// PerformanceSource exposes the recorded attempt history of a resource.
// *metrics.Stats satisfies it.
type PerformanceSource interface {
	Snapshot(resourceName string) (metrics.ResourceStats, bool)
}

// hopKey addresses one directed edge between ontology types.
type hopKey struct {
	source types.OntologyType
	target types.OntologyType
}

// Registry is the capability table loaded from a YAML file.
type Registry struct {
	resources []Resource
	hops      map[hopKey][]types.ResourceDescriptor
	typeSet   []types.OntologyType
	perf      PerformanceSource
}

// New builds a registry from resource declarations. Declarations are
// validated; wildcard resources (ServesAll) are bound to every hop the
// other resources form.
func New(resources []Resource) (*Registry, error) {
	if err := validate(resources); err != nil {
		return nil, err
	}

	r := &Registry{
		resources: resources,
		hops:      make(map[hopKey][]types.ResourceDescriptor),
	}

	typeSet := make(map[types.OntologyType]bool)
	for _, res := range resources {
		for _, hop := range res.Capabilities {
			key := hopKey{source: hop.Source, target: hop.Target}
			r.hops[key] = append(r.hops[key], types.ResourceDescriptor{
				Name:     res.Name,
				Priority: res.Priority,
			})
			typeSet[hop.Source] = true
			typeSet[hop.Target] = true
		}
	}

	// Wildcard resources front every declared hop.
	for _, res := range resources {
		if !res.ServesAll {
			continue
		}
		for key := range r.hops {
			r.hops[key] = append(r.hops[key], types.ResourceDescriptor{
				Name:     res.Name,
				Priority: res.Priority,
			})
		}
	}

	for typ := range typeSet {
		r.typeSet = append(r.typeSet, typ)
	}
	sort.Strings(r.typeSet)

	return r, nil
}

func validate(resources []Resource) error {
	seen := make(map[string]bool)
	for _, res := range resources {
		if res.Name == "" {
			return fmt.Errorf("resource declaration missing a name")
		}
		if seen[res.Name] {
			return fmt.Errorf("duplicate resource name %q", res.Name)
		}
		seen[res.Name] = true

		switch res.Kind {
		case KindREST:
			if res.URLTemplate == "" {
				return fmt.Errorf("resource %s: rest kind requires url_template", res.Name)
			}
		case KindTable:
			if res.File == "" {
				return fmt.Errorf("resource %s: table kind requires file", res.Name)
			}
		case KindCache:
			if !res.ServesAll && len(res.Capabilities) == 0 {
				return fmt.Errorf("resource %s: cache kind requires serves_all or capabilities", res.Name)
			}
		default:
			return fmt.Errorf("resource %s: unknown kind %q", res.Name, res.Kind)
		}

		if res.Kind != KindCache && len(res.Capabilities) == 0 {
			return fmt.Errorf("resource %s: no capabilities declared", res.Name)
		}
		for _, hop := range res.Capabilities {
			if hop.Source == "" || hop.Target == "" {
				return fmt.Errorf("resource %s: capability with empty source or target", res.Name)
			}
			if hop.Source == hop.Target {
				return fmt.Errorf("resource %s: capability %s -> %s maps a type to itself", res.Name, hop.Source, hop.Target)
			}
		}
	}
	return nil
}

// SetPerformanceSource wires the recorded attempt history into resource
// ordering. Without one, ordering is static priority only.
func (r *Registry) SetPerformanceSource(perf PerformanceSource) {
	r.perf = perf
}

// AllOntologyTypes returns every ontology type appearing in any declared
// capability, lexicographically sorted.
func (r *Registry) AllOntologyTypes() ([]types.OntologyType, error) {
	out := make([]types.OntologyType, len(r.typeSet))
	copy(out, r.typeSet)
	return out, nil
}

// ResourcesFor returns the resources able to attempt sourceType →
// targetType, ordered by static priority first. Equal priorities are
// broken by recorded success rate (higher first), then mean latency
// (lower first), then name.
func (r *Registry) ResourcesFor(sourceType, targetType types.OntologyType) ([]types.ResourceDescriptor, error) {
	bound := r.hops[hopKey{source: sourceType, target: targetType}]
	if len(bound) == 0 {
		return nil, nil
	}

	out := make([]types.ResourceDescriptor, len(bound))
	copy(out, bound)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		si, oki := r.snapshot(out[i].Name)
		sj, okj := r.snapshot(out[j].Name)
		if oki && okj {
			if si.SuccessRate() != sj.SuccessRate() {
				return si.SuccessRate() > sj.SuccessRate()
			}
			if si.MeanLatency() != sj.MeanLatency() {
				return si.MeanLatency() < sj.MeanLatency()
			}
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *Registry) snapshot(name string) (metrics.ResourceStats, bool) {
	if r.perf == nil {
		return metrics.ResourceStats{}, false
	}
	return r.perf.Snapshot(name)
}

// HasCache reports whether a cache resource is declared.
func (r *Registry) HasCache() bool {
	for _, res := range r.resources {
		if res.Kind == KindCache {
			return true
		}
	}
	return false
}

// BuildAdapters constructs the live adapter set. secrets maps secret file
// names to values (API keys). store backs cache resources; when it is nil,
// cache resources are left out of the set and paths referencing them fall
// through to the next resource.
func (r *Registry) BuildAdapters(httpCfg types.HTTPConfig, secrets map[string]string, store *cache.Store) ([]engine.Adapter, error) {
	var adapters []engine.Adapter
	for _, res := range r.resources {
		switch res.Kind {
		case KindREST:
			apiKey := ""
			if res.APIKeySecret != "" {
				apiKey = secrets[res.APIKeySecret]
			}
			adapters = append(adapters, adapter.NewREST(res.Name, res.URLTemplate, apiKey, nil, httpCfg))
		case KindTable:
			a, err := adapter.LoadTable(res.Name, res.File)
			if err != nil {
				return nil, fmt.Errorf("building adapter %s: %w", res.Name, err)
			}
			adapters = append(adapters, a)
		case KindCache:
			if store == nil {
				continue
			}
			adapters = append(adapters, adapter.NewCache(res.Name, store))
		}
	}
	return adapters, nil
}

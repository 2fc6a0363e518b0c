// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/pdiddy/metamap/internal/cache"
	"github.com/pdiddy/metamap/internal/engine"
	"github.com/pdiddy/metamap/internal/metrics"
	"github.com/pdiddy/metamap/internal/registry"
	"github.com/pdiddy/metamap/pkg/types"
)

// stack holds the wired engine collaborators for one invocation.
type stack struct {
	cfg      types.Config
	registry *registry.Registry
	finder   *engine.PathFinder
	executor *engine.PathExecutor
	cache    *cache.Store
	stats    *metrics.Stats
}

// loadConfig resolves the configuration from the viper sources (config
// file, environment, defaults).
func loadConfig() types.Config {
	v := viper.GetViper()
	v.SetDefault("http.timeout", "10s")
	v.SetDefault("http.user_agent", "metamap/"+version)
	v.SetDefault("engine.max_path_length", 3)
	v.SetDefault("engine.max_expansions", 10000)
	v.SetDefault("engine.max_concurrent", 4)
	v.SetDefault("registry.capability_file", "capabilities.yaml")
	v.SetDefault("cache.path", "cache/mappings.db")

	return types.Config{
		HTTP: types.HTTPConfig{
			Timeout:   v.GetDuration("http.timeout"),
			UserAgent: v.GetString("http.user_agent"),
		},
		Engine: types.EngineConfig{
			MaxPathLength: v.GetInt("engine.max_path_length"),
			MaxExpansions: v.GetInt("engine.max_expansions"),
			MaxConcurrent: v.GetInt("engine.max_concurrent"),
		},
		Registry: types.RegistryConfig{
			CapabilityFile: v.GetString("registry.capability_file"),
		},
		Cache: types.CacheConfig{
			Path: v.GetString("cache.path"),
		},
		Metrics: types.MetricsConfig{
			PrometheusAddr: v.GetString("metrics.prometheus_addr"),
		},
	}
}

// buildStack wires the registry, adapters, metrics, and cache into a
// ready-to-use PathFinder and PathExecutor.
func buildStack() (*stack, error) {
	cfg := loadConfig()

	reg, err := registry.Load(cfg.Registry.CapabilityFile)
	if err != nil {
		return nil, err
	}

	var store *cache.Store
	if cfg.Cache.Path != "" {
		store, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			// Caching is best effort; the engine works without it.
			fmt.Fprintf(os.Stderr, "warning: cache unavailable, continuing without it: %v\n", err)
			store = nil
		}
	}
	if store == nil && reg.HasCache() {
		// Declared cache resources get no adapter and their hop bindings
		// fall through to the next resource.
		fmt.Fprintln(os.Stderr, "warning: capability file declares a cache resource but caching is unavailable")
	}

	stats := metrics.NewStats()
	reg.SetPerformanceSource(stats)

	var recorder metrics.Recorder = stats
	if cfg.Metrics.PrometheusAddr != "" {
		prom := metrics.NewPrometheus()
		prom.Serve(cfg.Metrics.PrometheusAddr)
		recorder = metrics.Multi{stats, prom}
	}

	adapters, err := reg.BuildAdapters(cfg.HTTP, loadedSecrets, store)
	if err != nil {
		return nil, err
	}

	var cacher engine.Cacher
	if store != nil {
		cacher = store
	}

	return &stack{
		cfg:      cfg,
		registry: reg,
		finder:   engine.NewPathFinder(reg, cfg.Engine),
		executor: engine.NewPathExecutor(adapters, recorder, cacher, cfg.Engine, cfg.HTTP.Timeout, os.Stderr),
		cache:    store,
		stats:    stats,
	}, nil
}

// Close releases the cache connection, if open.
func (s *stack) Close() {
	if s.cache != nil {
		s.cache.Close()
	}
}

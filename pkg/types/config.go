// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by adapters that call remote
// lookup services.
type HTTPConfig struct {
	// Timeout bounds each individual resource call. A timed-out call is
	// treated as "no results" and the next resource is tried.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "metamap/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EngineConfig holds settings for path discovery and execution.
type EngineConfig struct {
	// MaxPathLength bounds the number of hops in a discovered path (default 3).
	MaxPathLength int `json:"max_path_length" yaml:"max_path_length"`

	// MaxExpansions bounds BFS queue expansions to guard against pathological
	// registries (default 10000). Exceeding it yields "no path", not an error.
	MaxExpansions int `json:"max_expansions" yaml:"max_expansions"`

	// MaxConcurrent bounds the number of candidates resolved in parallel
	// within one hop (default 4). Steps themselves run strictly in order.
	MaxConcurrent int `json:"max_concurrent" yaml:"max_concurrent"`
}

// RegistryConfig holds settings for the capability registry.
type RegistryConfig struct {
	// CapabilityFile is the YAML file declaring resources and the hops
	// each can attempt (default "capabilities.yaml").
	CapabilityFile string `json:"capability_file" yaml:"capability_file"`
}

// CacheConfig holds settings for the SQLite mapping cache.
type CacheConfig struct {
	// Path is the cache database file. Empty disables caching entirely;
	// the executor logs and continues without it.
	Path string `json:"path" yaml:"path"`
}

// MetricsConfig holds settings for performance metric reporting.
type MetricsConfig struct {
	// PrometheusAddr, when set (e.g. ":9090"), serves /metrics on that
	// address in addition to the in-memory stats used for resource ordering.
	PrometheusAddr string `json:"prometheus_addr" yaml:"prometheus_addr"`
}

// Config groups all configuration for the metamap CLI.
type Config struct {
	HTTP     HTTPConfig     `json:"http" yaml:"http"`
	Engine   EngineConfig   `json:"engine" yaml:"engine"`
	Registry RegistryConfig `json:"registry" yaml:"registry"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
}

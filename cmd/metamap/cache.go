// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metamap/internal/cache"
	"github.com/pdiddy/metamap/internal/registry"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the local mapping cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cached mapping counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openConfiguredCache()
		if err != nil {
			return err
		}
		defer store.Close()

		sum, err := store.Stats(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("mappings:  %d\n", sum.Mappings)
		fmt.Printf("hop kinds: %d\n", sum.HopKinds)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached mappings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openConfiguredCache()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Println("Cache cleared.")
		return nil
	},
}

// openConfiguredCache opens the cache named in the configuration without
// wiring the full engine stack.
func openConfiguredCache() (*cache.Store, error) {
	cfg := loadConfig()
	if cfg.Cache.Path == "" {
		return nil, fmt.Errorf("caching is disabled: set cache.path")
	}
	// Validate the capability file early so a broken setup surfaces here
	// the same way it does on map/path.
	if _, err := registry.Load(cfg.Registry.CapabilityFile); err != nil {
		return nil, err
	}
	return cache.Open(cfg.Cache.Path)
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}

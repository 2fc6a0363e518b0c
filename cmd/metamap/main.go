// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the metamap CLI. It maps biological
// identifiers between ontology namespaces by discovering and executing
// indirect paths through intermediate namespaces.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/metamap/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the metamap CLI.
var rootCmd = &cobra.Command{
	Use:   "metamap",
	Short: "Map biological identifiers across ontology namespaces",
	Long: `metamap translates a biological identifier from one ontology namespace
(e.g. an HMDB accession) into another (e.g. a ChEBI ID) when no single
resource provides a direct mapping. It discovers an indirect path through
intermediate namespaces, executes it hop by hop against the configured
lookup resources, compounds per-hop confidence into an overall score, and
caches intermediate results.

Resources and their capabilities are declared in a YAML capability file;
see the registry.capability_file config key.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./metamap.yaml or ~/.config/metamap/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("metamap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "metamap"))
		}
	}

	viper.SetEnvPrefix("METAMAP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

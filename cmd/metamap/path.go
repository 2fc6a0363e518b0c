// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metamap/pkg/types"
)

var pathCmd = &cobra.Command{
	Use:   "path [source-type] [target-type]",
	Short: "Discover a mapping path between two ontology types",
	Long: `Path runs the breadth-first capability search and prints the shortest
hop sequence from the source type to the target type, together with the
resources bound to each hop in priority order. No lookups are executed.`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func runPath(cmd *cobra.Command, args []string) error {
	source, target := args[0], args[1]
	jsonOutput, _ := cmd.Flags().GetBool("json")

	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.Close()

	path, found, err := st.finder.FindPath(context.Background(), source, target)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("No mapping path from %s to %s.\n", source, target)
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(path)
	}

	fmt.Printf("%-4s  %-16s  %-16s  %s\n", "Hop", "Source", "Target", "Resources")
	fmt.Println(strings.Repeat("-", 70))
	for i, step := range path {
		fmt.Printf("%-4d  %-16s  %-16s  %s\n",
			i+1, step.SourceType, step.TargetType, resourceNames(step.Resources))
	}
	fmt.Printf("\n%d hop(s)\n", len(path))
	return nil
}

func resourceNames(resources []types.ResourceDescriptor) string {
	names := make([]string, len(resources))
	for i, r := range resources {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}

func init() {
	pathCmd.Flags().Bool("json", false, "output the path as JSON")

	rootCmd.AddCommand(pathCmd)
}

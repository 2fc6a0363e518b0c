// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metamap/internal/identify"
	"github.com/pdiddy/metamap/pkg/types"
)

var mapCmd = &cobra.Command{
	Use:   "map [identifier]",
	Short: "Map one identifier into another ontology namespace",
	Long: `Map discovers the shortest capability path from the identifier's
namespace to the target namespace and executes it hop by hop. When --from
is omitted, the source namespace is inferred from the identifier's shape
(HMDB, CHEBI, KEGG compound, PubChem CID, UniProtKB AC, InChIKey, CAS).

Each result carries a compounded confidence and full hop-by-hop provenance.`,
	Args: cobra.ExactArgs(1),
	RunE: runMap,
}

func runMap(cmd *cobra.Command, args []string) error {
	id := args[0]
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if to == "" {
		return fmt.Errorf("target ontology type required: use --to")
	}
	if from == "" {
		typ, normalized, found := identify.Classify(id)
		if !found {
			return fmt.Errorf("could not infer the ontology type of %q: use --from", id)
		}
		from = typ
		id = normalized
		fmt.Fprintf(os.Stderr, "Inferred source type %s for %s\n", from, id)
	}

	st, err := buildStack()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	path, found, err := st.finder.FindPath(ctx, from, to)
	if err != nil {
		return err
	}
	if !found {
		fmt.Printf("No mapping path from %s to %s.\n", from, to)
		return nil
	}

	results, err := st.executor.Execute(ctx, id, path)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	formatResults(id, results)
	return nil
}

func formatResults(id string, results []types.MappingResult) {
	if len(results) == 0 {
		fmt.Printf("No mappings found for %s.\n", id)
		return
	}

	fmt.Printf("%-4s  %-24s  %-10s  %s\n", "Rank", "Target", "Confidence", "Path")
	fmt.Println(strings.Repeat("-", 90))

	for i, r := range results {
		fmt.Printf("%-4d  %-24s  %-10.3f  %s\n",
			i+1, r.TargetID, r.Confidence, formatProvenance(r.MappedPath()))
	}

	fmt.Printf("\n%d mapping(s)\n", len(results))
}

// formatProvenance renders a hop history as
// "HMDB -> CHEBI via unichem (0.80), CHEBI -> KEGG via cts (0.90)".
func formatProvenance(entries []types.PathEntry) string {
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s -> %s via %s (%.2f)",
			e.SourceType, e.TargetType, e.ResourceName, e.Confidence)
	}
	return strings.Join(parts, ", ")
}

func init() {
	mapCmd.Flags().String("from", "", "source ontology type (inferred from the identifier when omitted)")
	mapCmd.Flags().String("to", "", "target ontology type")
	mapCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(mapCmd)
}

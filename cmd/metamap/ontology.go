// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the ontology types known to the capability registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := buildStack()
		if err != nil {
			return err
		}
		defer st.Close()

		all, err := st.registry.AllOntologyTypes()
		if err != nil {
			return err
		}
		for _, typ := range all {
			fmt.Println(typ)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

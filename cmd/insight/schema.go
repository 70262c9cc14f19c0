package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/futureproof-labs/insight/internal/catalog"
)

func schemaCMD() *cobra.Command {
	var catalogFile string
	var schema = &cobra.Command{
		Use:   "schema",
		Short: "Print the schema catalog as rendered into prompts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(catalogFile)
			if err != nil {
				return err
			}
			fmt.Print(cat.Render())
			return nil
		},
	}
	schema.Flags().StringVar(&catalogFile, "catalog", "", "catalog JSON file (default is the built-in schema)")

	return schema
}

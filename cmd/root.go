package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbt2ddl/dbt2ddl/internal/ddl"
	"github.com/dbt2ddl/dbt2ddl/internal/schema"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "dbt2ddl <schema.yml> <output.sql> <target_schema>",
	Short: "dbt2ddl — generate constraint DDL from a dbt schema file",
	Long: `dbt2ddl converts a dbt schema file into ALTER TABLE statements that add
primary-key, not-null, uniqueness and foreign-key constraints against
the given target schema. Only this limited set of constraints is
considered; the statements are written to the output file, never
executed.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		inFile, outFile, targetSchema := args[0], args[1], args[2]

		doc, err := schema.Load(inFile)
		if err != nil {
			return fmt.Errorf("loading schema: %w", err)
		}

		result, err := ddl.Process(doc, targetSchema)
		if err != nil {
			return fmt.Errorf("processing schema: %w", err)
		}

		// Written only after the whole document processed cleanly, so a
		// structural error never leaves a partial output file behind.
		if err := os.WriteFile(outFile, result.Render(), 0o644); err != nil {
			return fmt.Errorf("writing DDL: %w", err)
		}

		fmt.Println(doc.Summary())
		fmt.Println(result.Summary())
		fmt.Printf("DDL statements written to %s\n", outFile)
		return nil
	},
}

func Execute() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package commands wires the umlforge CLI commands.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "umlforge",
	Short: "Transform UML class diagrams into relational schemas and migrations",
	Long: `umlforge turns UML class diagrams into physical relational schemas
and versioned SQL migrations.

It parses a class diagram, maps classes, associations, compositions and
generalizations to tables, foreign keys and indexes, diffs the result
against the previous snapshot and emits Flyway-style migration files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point for the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.PrintError("%v", err)
		os.Exit(1)
	}
}

package commands

import (
	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/config"
	"github.com/umlforge/umlforge/cli/internal/ui"
	"github.com/umlforge/umlforge/migrate/diff"
)

var diffCmd = &cobra.Command{
	Use:   "diff [diagram-path]",
	Short: "Compare the diagram against the last snapshot",
	Long: `Compare the current diagram's physical schema against the last
persisted snapshot and print the structural changes.

No migration is written; use "umlforge migrate" for that.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiff,
}

var diffDiagramPath string

func init() {
	diffCmd.Flags().StringVarP(&diffDiagramPath, "diagram", "d", "", "Path to diagram file")

	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	diagramPath := getDiagramPath(diffDiagramPath, args, cfg)

	ui.PrintHeader("umlforge", "Diff Schema")

	result, err := runTransform(diagramPath, false)
	if err != nil {
		return err
	}

	previous, err := loadSnapshot(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	if previous == nil {
		ui.PrintInfo("No snapshot at %s; every table is new", cfg.SnapshotPath)
		for _, name := range result.Model.TableNames() {
			ui.PrintStep("+ table " + name)
		}
		return nil
	}

	cs := diff.Compare(previous, result.Model)
	if !cs.HasChanges {
		ui.PrintSuccess("Schema is up to date, no changes")
		return nil
	}

	for _, name := range cs.NewTables {
		ui.PrintStep("+ table " + name)
	}
	for _, name := range cs.DeletedTables {
		ui.PrintStep("- table " + name)
	}
	for _, tc := range cs.ModifiedTables {
		ui.PrintStep("~ table " + tc.Table)
		for _, col := range tc.NewColumns {
			ui.PrintStep("    + column " + col.Name)
		}
		for _, col := range tc.DeletedColumns {
			ui.PrintStep("    - column " + col)
		}
		for _, change := range tc.ModifiedColumns {
			ui.PrintStep("    ~ column " + change.Name)
		}
	}

	ui.PrintSuccess("%d new, %d deleted, %d modified table(s)",
		len(cs.NewTables), len(cs.DeletedTables), len(cs.ModifiedTables))
	return nil
}

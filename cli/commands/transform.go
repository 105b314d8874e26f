package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/config"
	"github.com/umlforge/umlforge/cli/internal/ui"
)

var transformCmd = &cobra.Command{
	Use:   "transform [diagram-path]",
	Short: "Transform a class diagram into a physical schema",
	Long: `Transform a class diagram into a physical relational schema.

Classes become tables with audit columns and sequences, associations
become foreign keys or junction tables, compositions cascade deletes,
and generalizations flatten into the parent table with a discriminator.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTransformCmd,
}

var (
	transformDiagramPath string
	transformOutPath     string
	transformVerbose     bool
)

func init() {
	transformCmd.Flags().StringVarP(&transformDiagramPath, "diagram", "d", "", "Path to diagram file")
	transformCmd.Flags().StringVarP(&transformOutPath, "out", "o", "", "Write the physical model snapshot to this file")
	transformCmd.Flags().BoolVarP(&transformVerbose, "verbose", "v", false, "Print the transformation step log")

	rootCmd.AddCommand(transformCmd)
}

func runTransformCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	diagramPath := getDiagramPath(transformDiagramPath, args, cfg)

	ui.PrintHeader("umlforge", "Transform Diagram")

	result, err := runTransform(diagramPath, transformVerbose)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(result.Model.Tables))
	for _, table := range result.Model.Tables {
		fks := strconv.Itoa(len(table.ForeignKeys))
		idx := strconv.Itoa(len(table.Indexes))
		rows = append(rows, []string{
			table.Name,
			strconv.Itoa(len(table.Columns)),
			fks,
			idx,
		})
	}
	ui.PrintTable([]string{"Table", "Columns", "Foreign Keys", "Indexes"}, rows)

	if transformOutPath != "" {
		if err := saveSnapshot(transformOutPath, result.Model); err != nil {
			return err
		}
		ui.PrintInfo("Snapshot written to %s", transformOutPath)
	}

	ui.PrintSuccess("Transformed %d table(s)", len(result.Model.Tables))
	if len(result.Warnings) > 0 {
		fmt.Println()
		ui.PrintInfo("%d warning(s) reported above", len(result.Warnings))
	}
	return nil
}

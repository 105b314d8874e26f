package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/config"
	"github.com/umlforge/umlforge/cli/internal/ui"
)

var validateCmd = &cobra.Command{
	Use:   "validate [diagram-path]",
	Short: "Validate a class diagram",
	Long: `Validate a class diagram for transformation errors.

This command will:
- Parse the diagram file
- Run the full logical-to-physical transformation
- Check the resulting schema for structural problems
- Display validation results`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

var validateDiagramPath string

func init() {
	validateCmd.Flags().StringVarP(&validateDiagramPath, "diagram", "d", "", "Path to diagram file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	diagramPath := getDiagramPath(validateDiagramPath, args, cfg)

	ui.PrintHeader("umlforge", "Validate Diagram")

	result, err := runTransform(diagramPath, false)
	if err != nil {
		return err
	}

	if errs := result.Model.Validate(); len(errs) > 0 {
		for _, e := range errs {
			ui.PrintError("%v", e)
		}
		return fmt.Errorf("schema validation failed with %d error(s)", len(errs))
	}

	ui.PrintSuccess("Diagram is valid: %d table(s), %d sequence(s)",
		len(result.Model.Tables), len(result.Model.Sequences))
	return nil
}

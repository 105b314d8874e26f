package commands

import (
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/config"
	"github.com/umlforge/umlforge/cli/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Initialize a new umlforge project",
	Long: `Initialize a new umlforge project.

Creates a .umlforge.yaml config file, a sample class diagram and the
migrations directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initYes bool

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Accept all defaults without prompting")

	rootCmd.AddCommand(initCmd)
}

const sampleDiagram = `{
  "elements": {
    "customer": {
      "name": "Customer",
      "kind": "class",
      "attributes": [
        "+ id: long {id}",
        "+ email: string {unique, required}",
        "+ name: string"
      ]
    },
    "order": {
      "name": "Order",
      "kind": "class",
      "attributes": [
        "+ id: long {id}",
        "+ total: decimal {required}",
        "+ placedAt: datetime"
      ]
    }
  },
  "relationships": [
    {
      "id": "r1",
      "kind": "association",
      "sourceId": "customer",
      "targetId": "order",
      "sourceMultiplicity": "1",
      "targetMultiplicity": "0..*"
    }
  ]
}
`

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	ui.PrintHeader("umlforge", "Initialize Project")

	cfg := &config.Config{
		DiagramPath:   "diagram.json",
		MigrationsDir: "migrations",
		SnapshotPath:  filepath.Join("migrations", "model.json"),
		Dialect:       "postgres",
	}

	if !initYes {
		questions := []*survey.Question{
			{
				Name: "dialect",
				Prompt: &survey.Select{
					Message: "Which SQL dialect should migrations target?",
					Options: []string{"postgres", "mysql", "sqlite"},
					Default: "postgres",
				},
			},
			{
				Name: "diagrampath",
				Prompt: &survey.Input{
					Message: "Path to the class diagram file:",
					Default: "diagram.json",
				},
			},
		}
		answers := struct {
			Dialect     string
			DiagramPath string `survey:"diagrampath"`
		}{}
		if err := survey.Ask(questions, &answers); err != nil {
			return err
		}
		cfg.Dialect = answers.Dialect
		cfg.DiagramPath = answers.DiagramPath
	}

	if dir != "." {
		if err := config.AppFs.MkdirAll(dir, 0755); err != nil {
			return err
		}
		ui.PrintInfo("Created project directory: %s", dir)
	}

	if err := config.SaveConfig(cfg, dir); err != nil {
		return err
	}
	ui.PrintSuccess("Created %s", filepath.Join(dir, ".umlforge.yaml"))

	diagramPath := filepath.Join(dir, cfg.DiagramPath)
	if exists, _ := afero.Exists(config.AppFs, diagramPath); exists {
		ui.PrintWarning("Diagram already exists: %s, skipping", diagramPath)
	} else {
		if err := afero.WriteFile(config.AppFs, diagramPath, []byte(sampleDiagram), 0644); err != nil {
			return err
		}
		ui.PrintSuccess("Created sample diagram: %s", diagramPath)
	}

	migrationsDir := filepath.Join(dir, cfg.MigrationsDir)
	if err := config.AppFs.MkdirAll(migrationsDir, 0755); err != nil {
		return err
	}
	ui.PrintSuccess("Created migrations directory: %s", migrationsDir)

	ui.PrintInfo("Next: run \"umlforge migrate\" to generate V1__initial_schema.sql")
	return nil
}

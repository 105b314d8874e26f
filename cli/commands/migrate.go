package commands

import (
	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/config"
	"github.com/umlforge/umlforge/cli/internal/ui"
	"github.com/umlforge/umlforge/migrate"
	"github.com/umlforge/umlforge/migrate/history"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [diagram-path]",
	Short: "Generate a versioned SQL migration",
	Long: `Generate a versioned SQL migration from the diagram.

The first run writes V1__initial_schema.sql. Later runs diff the diagram
against the last snapshot and emit an incremental migration numbered
after the highest version already in the migrations directory. The
snapshot is updated after every generated migration.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMigrate,
}

var (
	migrateDiagramPath string
	migrateDialect     string
	migrateDryRun      bool
)

func init() {
	migrateCmd.Flags().StringVarP(&migrateDiagramPath, "diagram", "d", "", "Path to diagram file")
	migrateCmd.Flags().StringVar(&migrateDialect, "dialect", "", "SQL dialect: postgres, mysql or sqlite")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Print the migration SQL without writing files")

	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	diagramPath := getDiagramPath(migrateDiagramPath, args, cfg)
	dialect := cfg.Dialect
	if migrateDialect != "" {
		dialect = migrateDialect
	}

	ui.PrintHeader("umlforge", "Generate Migration")

	result, err := runTransform(diagramPath, false)
	if err != nil {
		return err
	}

	previous, err := loadSnapshot(cfg.SnapshotPath)
	if err != nil {
		return err
	}

	store := history.NewStore(config.AppFs, cfg.MigrationsDir)
	existing, err := store.List()
	if err != nil {
		return err
	}

	generator, err := migrate.NewGenerator(dialect)
	if err != nil {
		return err
	}

	stop := ui.Spinner("Generating migration")
	migration, err := generator.Generate(result.Model, previous, existing)
	if err != nil {
		stop(false, err.Error())
		return err
	}
	stop(true, "Migration plan ready")
	if migration == nil {
		ui.PrintSuccess("Schema is up to date, no migration needed")
		return nil
	}

	if migrateDryRun {
		ui.PrintInfo("Dry run, would write %s:", migration.FileName)
		return ui.PrintMarkdown("```sql\n" + migration.SQL + "```")
	}

	if err := store.Write(migration.FileName, migration.SQL); err != nil {
		return err
	}
	if err := saveSnapshot(cfg.SnapshotPath, result.Model); err != nil {
		return err
	}

	ui.PrintSuccess("Wrote %s (version %d)", migration.FileName, migration.Version)
	ui.PrintInfo("Snapshot updated at %s", cfg.SnapshotPath)
	return nil
}

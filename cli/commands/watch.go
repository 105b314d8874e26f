package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/config"
	"github.com/umlforge/umlforge/cli/internal/ui"
	"github.com/umlforge/umlforge/cli/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [diagram-path]",
	Short: "Re-validate the diagram whenever it changes",
	Long: `Watch the diagram file and re-run the transformation on every save.

Errors and warnings are printed as they appear. Press Ctrl+C to stop.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

var watchDiagramPath string

func init() {
	watchCmd.Flags().StringVarP(&watchDiagramPath, "diagram", "d", "", "Path to diagram file")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	diagramPath := getDiagramPath(watchDiagramPath, args, cfg)

	ui.PrintHeader("umlforge", "Watch Diagram")
	ui.PrintInfo("Watching %s, press Ctrl+C to stop", diagramPath)

	watcher, err := watch.NewWatcher(diagramPath, func() error {
		result, err := runTransform(diagramPath, false)
		if err != nil {
			// Keep watching: a broken diagram is the state being edited.
			return nil
		}
		ui.PrintSuccess("OK: %d table(s)", len(result.Model.Tables))
		return nil
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	ui.PrintInfo("Stopped watching")
	return nil
}

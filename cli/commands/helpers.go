package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/umlforge/umlforge/cli/internal/config"
	"github.com/umlforge/umlforge/cli/internal/ui"
	"github.com/umlforge/umlforge/model"
	"github.com/umlforge/umlforge/schema"
	"github.com/umlforge/umlforge/transform"
)

// getDiagramPath resolves the diagram path from a positional argument,
// a flag value, or the config default, in that order.
func getDiagramPath(flagValue string, args []string, cfg *config.Config) string {
	if len(args) > 0 {
		return args[0]
	}
	if flagValue != "" {
		return flagValue
	}
	return cfg.DiagramPath
}

// loadDiagram reads and parses a class diagram file.
func loadDiagram(path string) (*model.Diagram, error) {
	f, err := config.AppFs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("diagram file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read diagram file: %w", err)
	}
	defer f.Close()

	diagram, err := model.ParseDiagram(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diagram %s: %w", path, err)
	}
	return diagram, nil
}

// runTransform parses the diagram at path and transforms it, printing
// warnings and, when verbose, the step log. A transformation with
// errors is reported and returned as a non-nil error.
func runTransform(path string, verbose bool) (*transform.Result, error) {
	diagram, err := loadDiagram(path)
	if err != nil {
		return nil, err
	}

	result := transform.NewEngine().Transform(diagram)

	if verbose {
		for _, step := range result.Steps {
			ui.PrintStep(step)
		}
	}
	for _, w := range result.Warnings {
		ui.PrintWarning("%s", w)
	}

	if !result.Success {
		for _, e := range result.Errors {
			ui.PrintError("%s", e)
		}
		return result, fmt.Errorf("transformation failed with %d error(s)", len(result.Errors))
	}
	return result, nil
}

// loadSnapshot reads the persisted physical model. A missing snapshot
// is not an error: it returns nil, meaning no previous model exists.
func loadSnapshot(path string) (*schema.PhysicalModel, error) {
	data, err := afero.ReadFile(config.AppFs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var m schema.PhysicalModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}
	return &m, nil
}

// saveSnapshot persists the physical model for the next diff.
func saveSnapshot(path string, m *schema.PhysicalModel) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := afero.WriteFile(config.AppFs, path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umlforge/umlforge/cli/internal/update"
	"github.com/umlforge/umlforge/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE:  runVersion,
}

var versionCheckUpdate bool

func init() {
	versionCmd.Flags().BoolVar(&versionCheckUpdate, "check", false, "Check for a newer release")

	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Println(version.Long())

	if versionCheckUpdate {
		return update.CheckForUpdates(version.Version)
	}
	return nil
}

package update

import (
	"fmt"
	"runtime"

	"github.com/hashicorp/go-version"

	"github.com/umlforge/umlforge/cli/internal/ui"
)

// latestKnownVersion is the most recent published release. A future
// revision should fetch this from the GitHub releases API instead.
const latestKnownVersion = "0.1.0"

// CheckForUpdates compares the running version against the latest
// known release and prints an upgrade hint when one is available.
func CheckForUpdates(currentVersion string) error {
	current, err := version.NewVersion(currentVersion)
	if err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}

	latest, err := version.NewVersion(latestKnownVersion)
	if err != nil {
		return fmt.Errorf("invalid latest version format: %w", err)
	}

	if current.LessThan(latest) {
		ui.PrintWarning("A new version is available!")
		fmt.Printf("Current version: %s\n", currentVersion)
		fmt.Printf("Latest version:  %s\n", latestKnownVersion)
		fmt.Printf("\nUpdate with: go install github.com/umlforge/umlforge/cli@latest\n")
		fmt.Printf("Or download:  %s\n", GetDownloadURL(latestKnownVersion))
	}

	return nil
}

// GetDownloadURL returns the release asset URL for the current platform.
func GetDownloadURL(ver string) string {
	return fmt.Sprintf("https://github.com/umlforge/umlforge/releases/download/v%s/umlforge-%s-%s", ver, runtime.GOOS, runtime.GOARCH)
}

// Package history manages the append-only migration history: version
// numbering, the V<version>__<description>.sql naming convention, and the
// migration directory store.
package history

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// fileNamePattern matches versioned migration filenames. Files that do
// not match are ignored when computing the next version.
var fileNamePattern = regexp.MustCompile(`^V(\d+)__(.+)\.sql$`)

// NextVersion computes the next migration version from the existing
// migration filenames: 1 + the highest embedded version, defaulting to 1
// for an empty history. Max-based rather than count-based, so a gap in
// the sequence never causes a version to be reused.
func NextVersion(fileNames []string) int {
	highest := 0
	for _, name := range fileNames {
		if v, ok := ParseVersion(name); ok && v > highest {
			highest = v
		}
	}
	return highest + 1
}

// ParseVersion extracts the version number embedded in a migration
// filename.
func ParseVersion(fileName string) (int, bool) {
	m := fileNamePattern.FindStringSubmatch(fileName)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// FileName builds a migration filename from a version and description,
// sanitizing the description to a filesystem-safe snake_case token.
func FileName(version int, description string) string {
	return fmt.Sprintf("V%d__%s.sql", version, SanitizeDescription(description))
}

// SanitizeDescription lowercases a free-form description and collapses
// every run of non-alphanumeric characters to a single underscore.
func SanitizeDescription(description string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(description) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	result := strings.TrimSuffix(b.String(), "_")
	if result == "" {
		return "migration"
	}
	return result
}

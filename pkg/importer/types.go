// Package importer contains helpers shared by the parsers for data
// exported from other applications.
package importer

import (
	"strings"

	"github.com/ryanuber/go-glob"
)

// FilePattern is the pattern file names of uploaded exports must match.
const FilePattern = "*.json"

// ValidFilename reports whether name looks like an export file. The
// comparison ignores case.
func ValidFilename(name string) bool {
	return glob.Glob(FilePattern, strings.ToLower(name))
}

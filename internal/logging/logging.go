// Package logging wires ff's one piece of ambient output that isn't a
// search result: warnings about paths that could not be walked.
//
// Promoted from the teacher's internal/cli/run.go logWarn free function
// (a bare fmt.Fprintf to stderr) to a named, leveled logger backed by
// github.com/charmbracelet/log — a dependency the teacher's go.mod
// already carries (indirectly, pulled in for its own CLI but never
// imported) and SPEC_FULL.md's ambient stack calls for directly.
package logging

import (
	"os"

	"github.com/charmbracelet/log"
)

// New returns a logger that writes leveled warnings, prefixed "ff" and
// without timestamps, to stderr, in the style the teacher's tools use for background workers
// (workers run concurrently, so every line needs to stand alone — no
// relying on output ordering to convey source).
func New() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "ff",
	})
}

package colorize

import (
	"os"

	"golang.org/x/term"
)

// StdoutIsTerminal reports whether stdout is attached to a terminal,
// the condition under which output is colorized unless the caller
// overrides it (spec.md §6).
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

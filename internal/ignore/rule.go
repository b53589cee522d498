// Package ignore implements the ignore-file engine: parsing files with
// .gitignore-like semantics (spec.md §4.2) and testing paths against the
// local-then-global rule stacks inherited down a directory tree.
package ignore

import (
	"bufio"
	"bytes"
	"strings"
)

// Rule is one compiled line from an ignore file. Pattern has had its
// decorators (leading !, trailing /, leading whitespace) stripped.
type Rule struct {
	Pattern     string
	Whitelisted bool // pattern was prefixed with !
	OnlyDir     bool // pattern had one or more trailing /
	Anchored    bool // pattern contains an internal / and binds the full path
}

// parseLine compiles a single ignore-file line into a Rule. It returns
// ok=false for blank lines and comments, matching spec.md §4.2's per-line
// grammar exactly (escaped leading # and !, trailing-slash-run strip,
// internal-slash anchoring).
func parseLine(line string) (Rule, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return Rule{}, false
	}

	switch {
	case strings.HasPrefix(trimmed, `\#`):
		trimmed = "#" + trimmed[2:]
	case strings.HasPrefix(trimmed, "#"):
		return Rule{}, false
	}

	var whitelisted bool
	switch {
	case strings.HasPrefix(trimmed, `\!`):
		trimmed = "!" + trimmed[2:]
	case strings.HasPrefix(trimmed, "!"):
		whitelisted = true
		trimmed = trimmed[1:]
	}

	trimmed = strings.TrimRight(trimmed, " \t")
	if trimmed == "" {
		return Rule{}, false
	}

	var onlyDir bool
	for strings.HasSuffix(trimmed, "/") {
		onlyDir = true
		trimmed = strings.TrimSuffix(trimmed, "/")
	}
	if trimmed == "" {
		return Rule{}, false
	}

	return Rule{
		Pattern:     trimmed,
		Whitelisted: whitelisted,
		OnlyDir:     onlyDir,
		Anchored:    strings.Contains(trimmed, "/"),
	}, true
}

// parseRules compiles every line of data into Rules, in file order.
func parseRules(data []byte) []Rule {
	var rules []Rule
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if rule, ok := parseLine(sc.Text()); ok {
			rules = append(rules, rule)
		}
	}
	return rules
}

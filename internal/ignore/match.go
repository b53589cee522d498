package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IsIgnored reports whether path (isDir indicates its kind) should be
// excluded given the local ruleset inherited from the nearest enclosing
// directory that owned one, and the process-wide global ruleset. Either
// may be nil.
//
// Per spec.md §4.2: local rules are walked first, in file order, each
// match overriding the previous decision; then the global ruleset is
// walked the same way, its matches free to override the local decision.
// The final decision is "ignored" iff the last rule to match, across both
// passes, was non-whitelisted.
func IsIgnored(local, global *Ruleset, path string, isDir bool) bool {
	var ignored bool

	if local != nil {
		rel := relativeTo(local.Base, path)
		for _, rule := range local.Rules {
			if matches(rule, rel, isDir) {
				ignored = !rule.Whitelisted
			}
		}
	}

	if global != nil {
		for _, rule := range global.Rules {
			if matches(rule, path, isDir) {
				ignored = !rule.Whitelisted
			}
		}
	}

	return ignored
}

// relativeTo strips base and one leading separator from path, yielding the
// path relative to an ignore file's rule base (spec.md §4.2 step 1).
func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel := strings.TrimPrefix(path, base)
	return strings.TrimPrefix(rel, "/")
}

// matches tests one rule against relPath. Anchored patterns bind the whole
// relative path (wildcards do not cross /, via doublestar's glob
// semantics); unanchored patterns test only the final path component, so
// a pattern can match a file or directory at any depth.
func matches(rule Rule, relPath string, isDir bool) bool {
	if rule.OnlyDir && !isDir {
		return false
	}
	if relPath == "" {
		return false
	}

	if rule.Anchored {
		ok, _ := doublestar.Match(rule.Pattern, relPath)
		return ok
	}
	ok, _ := doublestar.Match(rule.Pattern, filepath.Base(relPath))
	return ok
}

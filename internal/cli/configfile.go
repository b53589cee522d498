// Package cli holds the parts of ff's command-line surface that aren't
// flag definitions themselves: loading the optional config file that
// seeds default arguments before cobra/pflag parse the real command
// line.
//
// Adapted from the teacher's internal/cli/configfile.go, renamed from
// gogrep's GOGREP_CONFIG_PATH/~/.gogrep to ff's FF_CONFIG_PATH/~/.ffrc
// per SPEC_FULL.md's ambient-stack configuration-file entry.
package cli

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// LoadConfigArgs reads ff's config file and returns the arguments it
// contains, one per non-comment, non-blank line. Config file location:
// FF_CONFIG_PATH env var, or ~/.ffrc. Returns nil if no config file is
// found or it cannot be read — a missing config file is never fatal.
func LoadConfigArgs() []string {
	path := os.Getenv("FF_CONFIG_PATH")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(home, ".ffrc")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var args []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, line)
	}
	return args
}

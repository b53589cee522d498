// Command ff is a parallel, recursive filename search tool: a
// multithreaded alternative to a plain `find`.
//
// Grounded on options.c's flag table and print_usage text
// (original_source/options.c) for the exact flag surface, wired through
// github.com/spf13/cobra and github.com/spf13/pflag — dependencies the
// teacher's go.mod already carried indirectly for its own (unwritten)
// CLI and SPEC_FULL.md's ambient stack calls for directly.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/dl/ff/internal/cli"
	"github.com/dl/ff/internal/colorize"
	"github.com/dl/ff/internal/logging"
	"github.com/dl/ff/internal/option"
	"github.com/dl/ff/internal/orchestrator"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := logging.New()
	opts := option.Default()

	var useGlob, hidden bool
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "ff [pattern] [paths...]",
		Short: "Parallel recursive filename search",
		Long: "ff walks one or more directory trees in parallel and prints the paths\n" +
			"of entries matching a regular expression or glob pattern, honoring\n" +
			".gitignore files the way git itself does.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, positional []string) error {
			if len(positional) > 0 {
				opts.Pattern = positional[0]
				opts.Mode = option.ModeRegex
				positional = positional[1:]
			}
			if useGlob {
				opts.Mode = option.ModeGlob
			}
			if opts.Pattern == "" {
				opts.Mode = option.ModeNone
			}

			if len(positional) > 0 {
				opts.Paths = positional
			} else {
				opts.Paths = []string{"."}
			}

			opts.SkipHidden = !hidden

			if typeFlag != "" {
				t, err := option.TypeFromFlag(typeFlag[0])
				if err != nil {
					return err
				}
				opts.OnlyType = t
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&useGlob, "glob", "g", false, "treat pattern as a shell glob instead of a regular expression")
	flags.BoolVarP(&hidden, "hidden", "H", false, "include hidden entries (dotfiles)")
	flags.BoolVarP(&opts.NoIgnore, "no-ignore", "I", false, "do not respect .gitignore files")
	flags.BoolVarP(&opts.ICase, "ignore-case", "i", false, "case-insensitive pattern matching")
	flags.IntVarP(&opts.MaxDepth, "max-depth", "d", -1, "maximum directory depth to descend (unbounded if unset)")
	flags.StringVarP(&opts.Extension, "extension", "e", "", "only emit regular files with this extension")
	flags.IntVarP(&opts.NThreads, "threads", "j", runtime.NumCPU(), "number of worker threads")
	flags.StringVarP(&typeFlag, "type", "t", "", "restrict to one entry type: b (block) c (char) d (dir) n (fifo) l (link) f (regular) s (socket)")

	cmd.SetArgs(append(cli.LoadConfigArgs(), args...))

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ff:", err)
		return 1
	}
	if cmd.Flags().Changed("help") {
		return 0
	}

	opts.Colorize = shouldColorize()

	if err := opts.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "ff:", err)
		return 1
	}

	o, err := orchestrator.New(opts, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ff:", err)
		return 1
	}
	o.Run()
	return 0
}

func shouldColorize() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return colorize.StdoutIsTerminal()
}

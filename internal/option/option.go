// Package option defines ff's Options (spec.md §3): the read-only
// configuration shared by every worker, plus the fatal-argument
// validation rules recovered from original_source/options.c.
//
// Generalized from the teacher's internal/cli/config.go Config struct;
// the fatal-error boundaries below (max-depth, threads, type) mirror
// options.c's parse_options switch rather than the teacher's grep-flag
// set.
package option

import "fmt"

// Mode selects the matcher facade's backend (spec.md §4.6).
type Mode int

const (
	// ModeNone matches every name.
	ModeNone Mode = iota
	ModeRegex
	ModeGlob
)

// EntryType restricts which dirent kinds are emitted (spec.md §3).
type EntryType int

const (
	TypeAny EntryType = iota
	TypeBlock
	TypeChar
	TypeDir
	TypeFIFO
	TypeLink
	TypeRegular
	TypeSocket
)

// TypeFromFlag maps the -t/--type single-character codes from
// original_source/options.c's switch onto an EntryType.
func TypeFromFlag(c byte) (EntryType, error) {
	switch c {
	case 'b':
		return TypeBlock, nil
	case 'c':
		return TypeChar, nil
	case 'd':
		return TypeDir, nil
	case 'n':
		return TypeFIFO, nil
	case 'l':
		return TypeLink, nil
	case 'f':
		return TypeRegular, nil
	case 's':
		return TypeSocket, nil
	default:
		return TypeAny, fmt.Errorf("invalid argument for --type: %q", c)
	}
}

// Options is constructed once before workers start and is read-only
// thereafter (spec.md §3, §5).
type Options struct {
	Mode       Mode
	Pattern    string
	OnlyType   EntryType
	SkipHidden bool
	NoIgnore   bool
	ICase      bool
	MaxDepth   int // -1 = unbounded
	Colorize   bool
	NThreads   int
	Extension  string // "" = no extension filter
	Delimiter  byte
	Absolute   bool

	Paths []string
}

// Default returns an Options with the CLI's documented defaults: hidden
// entries skipped, ignore files honored, unbounded depth, one worker per
// hardware thread (the caller fills that in), newline delimiter.
func Default() Options {
	return Options{
		Mode:       ModeNone,
		OnlyType:   TypeAny,
		SkipHidden: true,
		MaxDepth:   -1,
		Delimiter:  '\n',
	}
}

// Validate enforces the fatal-argument rules spec.md §7 and
// original_source/options.c require: a rejected --max-depth of exactly 0,
// a non-positive thread count, and at least one start path.
func (o *Options) Validate() error {
	if o.MaxDepth == 0 {
		return fmt.Errorf("invalid argument for --max-depth: 0")
	}
	if o.NThreads <= 0 {
		return fmt.Errorf("invalid argument for --threads: %d", o.NThreads)
	}
	if len(o.Paths) == 0 {
		return fmt.Errorf("no search path given")
	}
	return nil
}

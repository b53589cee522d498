package walker

import (
	"sort"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dl/ff/internal/colorize"
	"github.com/dl/ff/internal/ignore"
	"github.com/dl/ff/internal/matcher"
	"github.com/dl/ff/internal/option"
)

// Job is one unit of work on the shared queue: a directory to scan, its
// depth below the nearest start path, and the ignore ruleset inherited
// from the closest enclosing directory that owned one (spec.md §3, §4.4).
type Job struct {
	Path   string
	Depth  int
	Ignore *ignore.Ruleset
}

// Result is everything a Scan produces: the formatted output for any
// matching entries, in locale-collated order, and the child jobs its
// subdirectories should become.
type Result struct {
	Lines    []byte
	Children []Job
}

// Walker holds the read-only state every worker shares while scanning
// directories: the resolved options, the process-wide global ignore
// ruleset, and the compiled matcher. A single Walker is safe for
// concurrent use by many workers, each supplying its own getdents buffer,
// Dirent scratch slice and matcher.Scratch (spec.md §4.6, §5).
//
// Generalized from the teacher's parallelWalker
// (DanielLaubacher-gogrep/internal/walker/walker.go): the fd-per-directory
// open/getdents/close loop and subdir fan-out are kept, content search is
// replaced with spec.md §4.5's filter-sort-emit pipeline, and the
// teacher's condvar-based queue/pending-counter pair is replaced entirely
// by internal/queue and internal/flagman at the orchestrator layer.
type Walker struct {
	opts   option.Options
	global *ignore.Ruleset
	match  *matcher.Matcher
}

// New returns a Walker configured from opts.
func New(opts option.Options, global *ignore.Ruleset, m *matcher.Matcher) *Walker {
	return &Walker{opts: opts, global: global, match: m}
}

// NewScratch returns per-worker matcher scratch state, so callers never
// need to reach into the Walker's internal matcher directly.
func (w *Walker) NewScratch() *matcher.Scratch { return w.match.NewScratch() }

// Scan opens job.Path, reads its entries with getdents64, applies the
// hidden/ignore/type/extension/pattern filters, and returns the matching
// entries already formatted (colorized if requested) in locale-collated
// order, plus the child jobs for any subdirectories. buf and dirents are
// per-worker scratch, reused across calls the way the teacher reuses its
// getdents buffer; scratch is the caller's matcher.Scratch.
//
// Scan never returns an error: an unreadable or vanished directory is
// skipped silently per spec.md §7's "best effort" error policy, and the
// caller (internal/orchestrator) is responsible for releasing job.Ignore
// once the job is consumed.
func (w *Walker) Scan(job Job, scratch *matcher.Scratch, buf []byte, dirents []Dirent) (Result, []Dirent) {
	var res Result
	if w.opts.MaxDepth >= 0 && job.Depth >= w.opts.MaxDepth {
		return res, dirents
	}

	fd, err := unix.Open(job.Path, unix.O_RDONLY|unix.O_DIRECTORY, 0)
	if err != nil {
		return res, dirents
	}
	defer unix.Close(fd)

	type match struct {
		full  string
		isDir bool
	}
	var matches []match

	for {
		n, err := unix.Getdents(fd, buf)
		if err != nil || n == 0 {
			break
		}
		dirents = ParseDirents(buf, n, dirents)

		for _, d := range dirents {
			if w.opts.SkipHidden && hidden(d.Name) {
				continue
			}

			kind, ok := w.resolveKind(job.Path, d)
			if !ok {
				continue
			}
			isDir := kind == option.TypeDir
			full := joinPath(job.Path, d.Name)

			if !w.opts.NoIgnore && ignore.IsIgnored(job.Ignore, w.global, full, isDir) {
				continue
			}

			if isDir {
				res.Children = append(res.Children, w.childJob(full, job))
			}

			if w.emitEligible(d.Name, kind, scratch) {
				matches = append(matches, match{full: full, isDir: isDir})
			}
		}
	}

	if len(matches) == 0 {
		return res, dirents
	}

	col := collate.New(language.Und)
	sort.Slice(matches, func(i, j int) bool {
		return col.CompareString(matches[i].full, matches[j].full) < 0
	})

	for _, m := range matches {
		res.Lines = w.appendLine(res.Lines, job.Path, m.full, m.isDir)
	}
	return res, dirents
}

// hidden reports whether name should be skipped under --hidden's default
// (dotfiles and editor backup files excluded); "." and ".." never reach
// here, ParseDirents drops them already (spec.md §4.5 step 2, confirmed
// against original_source/ff.c's readdir loop: `d_name[0] == '.' ||
// d_name[d_namlen-1] == '~'`).
func hidden(name string) bool {
	return len(name) > 0 && (name[0] == '.' || name[len(name)-1] == '~')
}

// resolveKind determines the entry's type. DT_UNKNOWN is resolved via
// lstat rather than spec.md §4.5's documented "treat as non-directory"
// shortcut (see SPEC_FULL.md Open Question decisions): the extra lstat is
// paid only for entries the filesystem reports as DT_UNKNOWN, and it keeps
// real directories on such filesystems from being treated as plain files
// and never descended into. An entry whose lstat fails is skipped.
func (w *Walker) resolveKind(parent string, d Dirent) (option.EntryType, bool) {
	switch d.Type {
	case DT_BLK:
		return option.TypeBlock, true
	case DT_CHR:
		return option.TypeChar, true
	case DT_DIR:
		return option.TypeDir, true
	case DT_FIFO:
		return option.TypeFIFO, true
	case DT_LNK:
		return option.TypeLink, true
	case DT_REG:
		return option.TypeRegular, true
	case DT_SOCK:
		return option.TypeSocket, true
	default: // DT_UNKNOWN
		var st unix.Stat_t
		if err := unix.Lstat(joinPath(parent, d.Name), &st); err != nil {
			return option.TypeAny, false
		}
		return kindFromMode(st.Mode), true
	}
}

func kindFromMode(mode uint32) option.EntryType {
	switch mode & unix.S_IFMT {
	case unix.S_IFBLK:
		return option.TypeBlock
	case unix.S_IFCHR:
		return option.TypeChar
	case unix.S_IFDIR:
		return option.TypeDir
	case unix.S_IFIFO:
		return option.TypeFIFO
	case unix.S_IFLNK:
		return option.TypeLink
	case unix.S_IFSOCK:
		return option.TypeSocket
	default:
		return option.TypeRegular
	}
}

// childJob builds the job for a just-discovered subdirectory, resolving
// its ignore ruleset per spec.md §4.2/§3: a fresh .gitignore in full
// takes precedence; absent one, the subdirectory inherits the parent
// job's ruleset via Retain, keeping the refcount accurate.
func (w *Walker) childJob(full string, parent Job) Job {
	if w.opts.NoIgnore {
		return Job{Path: full, Depth: parent.Depth + 1}
	}
	if rs, ok := ignore.Parse(full); ok {
		return Job{Path: full, Depth: parent.Depth + 1, Ignore: rs}
	}
	return Job{Path: full, Depth: parent.Depth + 1, Ignore: parent.Ignore.Retain()}
}

// emitEligible applies the type, extension and pattern filters that
// decide whether an entry is reported (spec.md §4.5 steps 6-8). Ignore
// and hidden filtering happen earlier since they also gate descent.
func (w *Walker) emitEligible(name string, kind option.EntryType, scratch *matcher.Scratch) bool {
	if w.opts.OnlyType != option.TypeAny && kind != w.opts.OnlyType {
		return false
	}
	if w.opts.Extension != "" {
		if kind != option.TypeRegular || !strings.HasSuffix(name, "."+w.opts.Extension) {
			return false
		}
	}
	return w.match.Match(name, scratch)
}

// appendLine formats one emitted entry (spec.md §4.5 step 9): plain path
// plus delimiter, or when opts.Colorize is set, the parent directory in
// directory color, then the entry's own color around its basename.
func (w *Walker) appendLine(buf []byte, parent, full string, isDir bool) []byte {
	if !w.opts.Colorize {
		buf = append(buf, full...)
		buf = append(buf, w.opts.Delimiter)
		return buf
	}
	buf = append(buf, colorize.Dir...)
	buf = append(buf, dirPrefix(parent)...)
	buf = append(buf, colorize.Reset...)
	buf = append(buf, colorize.For(full, isDir)...)
	buf = append(buf, baseName(full)...)
	buf = append(buf, colorize.Reset...)
	buf = append(buf, w.opts.Delimiter)
	return buf
}

func dirPrefix(path string) string {
	if strings.HasSuffix(path, "/") {
		return path
	}
	return path + "/"
}

func baseName(full string) string {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		return full[i+1:]
	}
	return full
}

// joinPath concatenates a directory and entry name with a single
// separator, avoiding filepath.Join's Clean pass since both inputs are
// already well-formed (kept from the teacher's walker.go verbatim).
func joinPath(dirPath, name string) string {
	needsSep := len(dirPath) == 0 || dirPath[len(dirPath)-1] != '/'
	n := len(dirPath) + len(name)
	if needsSep {
		n++
	}
	buf := make([]byte, n)
	copy(buf, dirPath)
	i := len(dirPath)
	if needsSep {
		buf[i] = '/'
		i++
	}
	copy(buf[i:], name)
	return unsafe.String(&buf[0], len(buf))
}

// Package orchestrator wires the worker pool together: it owns the
// queue, the flagman and the global ignore ruleset, seeds one job per
// start path, and runs workers until the tree is quiescent (spec.md
// §4.7).
//
// Grounded on the teacher's internal/scheduler/scheduler.go for the
// "spawn N workers, WaitGroup to join" shape; the channel-of-files and
// atomic sequence number it used for content search are replaced by
// internal/queue's priority queue and internal/flagman's quiescence
// latch, since spec.md §4.7 requires termination detection across a
// dynamically growing job tree rather than a single closed channel.
package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/dl/ff/internal/flagman"
	"github.com/dl/ff/internal/ignore"
	"github.com/dl/ff/internal/matcher"
	"github.com/dl/ff/internal/option"
	"github.com/dl/ff/internal/output"
	"github.com/dl/ff/internal/queue"
	"github.com/dl/ff/internal/walker"
)

// getdentsBufSize is the per-worker raw read buffer; matches the
// teacher's own 32KiB choice in internal/walker/walker.go.
const getdentsBufSize = 32 * 1024

// Orchestrator runs one ff search to completion.
type Orchestrator struct {
	opts   option.Options
	paths  []string
	walker *walker.Walker
	queue  *queue.Queue
	flag   *flagman.Flagman
	global *ignore.Ruleset
	out    *output.Writer
	log    *log.Logger
}

// New builds an Orchestrator from opts. It compiles the matcher, loads
// the global ignore ruleset (unless --no-ignore), and checks every start
// path, all up front: a bad pattern, or a start path that doesn't exist,
// isn't a directory or can't be opened, is a fatal argument error
// (spec.md §7, SPEC_FULL.md supplemented feature 2), reported before any
// worker is spawned rather than skipped per-job. A missing or unreadable
// global ignore file is not an error; it just leaves no global ruleset.
func New(opts option.Options, logger *log.Logger) (*Orchestrator, error) {
	m, err := matcher.New(opts)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern: %w", err)
	}

	paths := make([]string, 0, len(opts.Paths))
	for _, p := range opts.Paths {
		clean := trimTrailingSlash(p)
		info, err := os.Stat(clean)
		if err != nil {
			return nil, fmt.Errorf("start path %q: %w", p, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("start path %q: not a directory", p)
		}
		d, err := os.Open(clean)
		if err != nil {
			return nil, fmt.Errorf("start path %q: %w", p, err)
		}
		d.Close()
		if opts.Absolute {
			abs, err := filepath.Abs(clean)
			if err != nil {
				return nil, fmt.Errorf("start path %q: %w", p, err)
			}
			clean = abs
		}
		paths = append(paths, clean)
	}

	var global *ignore.Ruleset
	if !opts.NoIgnore {
		global = ignore.LoadGlobal()
	}

	return &Orchestrator{
		opts:   opts,
		paths:  paths,
		walker: walker.New(opts, global, m),
		queue:  queue.New(),
		flag:   flagman.New(),
		global: global,
		out:    output.NewWriter(),
		log:    logger,
	}, nil
}

// Run seeds one depth-0 job per start path, runs opts.NThreads workers
// to quiescence, and returns whether at least one match was emitted.
// cmd/ff does not use the result: its exit code is 0 whenever Run is
// reached.
func (o *Orchestrator) Run() bool {
	matched := new(matchFlag)
	var wg sync.WaitGroup
	for i := 0; i < o.opts.NThreads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.worker(matched)
		}()
	}

	// Hold the flagman busy across the whole seeding loop (spec.md §4.7
	// steps 2 and 5): without this, a worker could drain every seed job
	// enqueued so far and observe the flagman at zero before a later seed
	// path in this loop gets its own Acquire in.
	o.flag.Acquire()
	for _, clean := range o.paths {
		var rs *ignore.Ruleset
		if !o.opts.NoIgnore {
			if r, ok := ignore.Parse(clean); ok {
				rs = r
			}
		}
		o.flag.Acquire()
		o.queue.PutHead(walker.Job{Path: clean, Depth: 0, Ignore: rs})
	}
	o.flag.Release()

	o.flag.Wait()
	for i := 0; i < o.opts.NThreads; i++ {
		o.queue.PutTail(nil)
	}
	wg.Wait()

	o.global.Release()
	return matched.get()
}

// worker drains jobs from the queue until it sees a terminator. Each job
// is a Flagman-tracked unit: Acquire happens when a job is enqueued
// (seeding above, or fan-out below), Release happens exactly once here
// when the job has been fully scanned.
func (o *Orchestrator) worker(matched *matchFlag) {
	scratch := o.walker.NewScratch()
	defer scratch.Free()

	buf := make([]byte, getdentsBufSize)
	var dirents []walker.Dirent

	for {
		v := o.queue.Get()
		if v == nil {
			return
		}
		job := v.(walker.Job)

		res, d := o.walker.Scan(job, scratch, buf, dirents)
		dirents = d
		job.Ignore.Release()

		if len(res.Lines) > 0 {
			matched.set()
			if err := o.out.Write(res.Lines); err != nil {
				o.log.Warn("write failed", "err", err)
			}
		}

		for _, child := range res.Children {
			o.flag.Acquire()
			// Priority is the negated depth+1 from spec.md §4.4's formula:
			// the queue pops its highest-priority (head) entry first, so
			// shallower jobs (closer to zero) must carry a larger value
			// than deeper ones to drain before them. See DESIGN.md.
			o.queue.Put(child, -(child.Depth + 1))
		}

		o.flag.Release()
	}
}

// trimTrailingSlash drops a trailing "/" from a start path, except when
// the path is the root directory itself (spec.md §3 path invariant).
func trimTrailingSlash(p string) string {
	if p == "/" || !strings.HasSuffix(p, "/") {
		return p
	}
	return strings.TrimRight(p, "/")
}

// matchFlag is a tiny thread-safe latch: many workers may set it
// concurrently, only the final value after Wait matters.
type matchFlag struct {
	mu  sync.Mutex
	hit bool
}

func (m *matchFlag) set() {
	m.mu.Lock()
	m.hit = true
	m.mu.Unlock()
}

func (m *matchFlag) get() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hit
}

package walker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dl/ff/internal/ignore"
	"github.com/dl/ff/internal/matcher"
	"github.com/dl/ff/internal/option"
)

func scanDir(t *testing.T, w *Walker, dir string) Result {
	t.Helper()
	m, err := matcher.New(w.opts)
	if err != nil {
		t.Fatal(err)
	}
	s := m.NewScratch()
	defer s.Free()
	res, _ := w.Scan(Job{Path: dir, Ignore: nil}, s, make([]byte, 32*1024), nil)
	return res
}

func newWalker(t *testing.T, opts option.Options) *Walker {
	t.Helper()
	m, err := matcher.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return New(opts, nil, m)
}

func TestScanMatchesAndSortsEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"banana.txt", "apple.txt", "cherry.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	opts := option.Default()
	opts.Paths = []string{dir}
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	got := string(res.Lines)
	wantOrder := []string{"apple.txt", "banana.txt", "cherry.txt"}
	lastIdx := -1
	for _, name := range wantOrder {
		idx := strings.Index(got, name)
		if idx < 0 {
			t.Fatalf("expected %q in output, got %q", name, got)
		}
		if idx < lastIdx {
			t.Fatalf("expected collated order %v, got %q", wantOrder, got)
		}
		lastIdx = idx
	}
}

func TestScanSkipsHiddenByDefault(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "visible"), nil, 0o644)

	opts := option.Default()
	opts.Paths = []string{dir}
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	got := string(res.Lines)
	if strings.Contains(got, ".hidden") {
		t.Errorf("expected .hidden to be skipped, got %q", got)
	}
	if !strings.Contains(got, "visible") {
		t.Errorf("expected visible to be emitted, got %q", got)
	}
}

func TestScanSkipsEditorBackupFilesByDefault(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "foo.txt~"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "foo.txt"), nil, 0o644)

	opts := option.Default()
	opts.Paths = []string{dir}
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	got := string(res.Lines)
	if strings.Contains(got, "foo.txt~") {
		t.Errorf("expected foo.txt~ to be skipped, got %q", got)
	}
	if !strings.Contains(got, "foo.txt\n") {
		t.Errorf("expected foo.txt to be emitted, got %q", got)
	}
}

func TestScanHonorsMaxDepth(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "file"), nil, 0o644)

	opts := option.Default()
	opts.Paths = []string{dir}
	opts.MaxDepth = 0
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	if len(res.Lines) != 0 || len(res.Children) != 0 {
		t.Errorf("expected no work at depth >= MaxDepth, got lines=%q children=%v", res.Lines, res.Children)
	}
}

func TestScanEnqueuesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	opts := option.Default()
	opts.Paths = []string{dir}
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	if len(res.Children) != 1 || res.Children[0].Path != sub {
		t.Fatalf("expected one child job for %q, got %v", sub, res.Children)
	}
	if res.Children[0].Depth != 1 {
		t.Errorf("expected child depth 1, got %d", res.Children[0].Depth)
	}
}

func TestScanExtensionFilterExcludesDirectoriesFromEmitButNotDescent(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub.go")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "main.go"), nil, 0o644)

	opts := option.Default()
	opts.Paths = []string{dir}
	opts.Extension = "go"
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	got := string(res.Lines)
	if !strings.Contains(got, "main.go") {
		t.Errorf("expected main.go to be emitted, got %q", got)
	}
	if strings.Contains(got, "sub.go") {
		t.Errorf("directory sub.go should not satisfy the extension filter, got %q", got)
	}
	if len(res.Children) != 1 || res.Children[0].Path != sub {
		t.Errorf("expected sub.go to still be enqueued for descent, got %v", res.Children)
	}
}

func TestScanTypeFilterRestrictsEmissionNotDescent(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	os.Mkdir(sub, 0o755)
	os.WriteFile(filepath.Join(dir, "file"), nil, 0o644)

	opts := option.Default()
	opts.Paths = []string{dir}
	opts.OnlyType = option.TypeRegular
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	got := string(res.Lines)
	if strings.Contains(got, "/sub") {
		t.Errorf("directory should not be emitted under --type f, got %q", got)
	}
	if !strings.Contains(got, "file") {
		t.Errorf("expected regular file to be emitted, got %q", got)
	}
	if len(res.Children) != 1 {
		t.Errorf("expected descent into sub regardless of --type f, got %v", res.Children)
	}
}

func TestScanIgnoresPerGitignore(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "keep.txt"), nil, 0o644)
	os.WriteFile(filepath.Join(dir, "drop.log"), nil, 0o644)

	rs, ok := ignore.Parse(dir)
	if !ok {
		t.Fatal("expected .gitignore to parse")
	}

	opts := option.Default()
	opts.Paths = []string{dir}
	w := newWalker(t, opts)

	m, err := matcher.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	s := m.NewScratch()
	res, _ := w.Scan(Job{Path: dir, Ignore: rs}, s, make([]byte, 32*1024), nil)

	got := string(res.Lines)
	if strings.Contains(got, "drop.log") {
		t.Errorf("expected drop.log to be ignored, got %q", got)
	}
	if !strings.Contains(got, "keep.txt") {
		t.Errorf("expected keep.txt to be emitted, got %q", got)
	}
}

func TestScanColorizesOutput(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "plain.txt"), nil, 0o644)

	opts := option.Default()
	opts.Paths = []string{dir}
	opts.Colorize = true
	w := newWalker(t, opts)

	res := scanDir(t, w, dir)
	got := string(res.Lines)
	if !strings.Contains(got, "\033[01;34m") {
		t.Errorf("expected directory color prefix in colorized output, got %q", got)
	}
	if !strings.Contains(got, "\033[0m") {
		t.Errorf("expected reset sequence in colorized output, got %q", got)
	}
}

func TestScanUnreadableDirectoryReturnsEmptyResult(t *testing.T) {
	opts := option.Default()
	opts.Paths = []string{"/nonexistent/does/not/exist"}
	w := newWalker(t, opts)

	res := scanDir(t, w, "/nonexistent/does/not/exist")
	if len(res.Lines) != 0 || len(res.Children) != 0 {
		t.Errorf("expected empty result for unreadable directory, got %+v", res)
	}
}

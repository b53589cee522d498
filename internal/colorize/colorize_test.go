package colorize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestForRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := For(path, false); got != "" {
		t.Errorf("plain file got %q, want empty", got)
	}
}

func TestForExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(path, []byte("x"), 0o755); err != nil {
		t.Fatal(err)
	}
	if got := For(path, false); got != executable {
		t.Errorf("executable got %q, want %q", got, executable)
	}
}

func TestForDirectory(t *testing.T) {
	tmp := t.TempDir()
	if got := For(tmp, true); got != dir {
		t.Errorf("directory got %q, want %q", got, dir)
	}
}

func TestForMissingPath(t *testing.T) {
	if got := For("/nonexistent/path/does/not/exist", false); got != "" {
		t.Errorf("missing path got %q, want empty", got)
	}
}

func TestForMissingDirectoryPath(t *testing.T) {
	if got := For("/nonexistent/path/does/not/exist", true); got != "" {
		t.Errorf("missing directory path got %q, want empty", got)
	}
}

func TestByExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/a/b/archive.tar.gz", archive},
		{"/a/b/photo.PNG", imageVideo},
		{"/a/b/song.mp3", audio},
		{"/a/b/unknown.xyz", ""},
		{"/a/b/noext", ""},
	}
	for _, tt := range tests {
		if got := byExtension(tt.path); got != tt.want {
			t.Errorf("byExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

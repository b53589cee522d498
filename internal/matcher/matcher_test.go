package matcher

import (
	"testing"

	"github.com/dl/ff/internal/option"
)

func TestModeNoneMatchesEverything(t *testing.T) {
	m, err := New(option.Options{Mode: option.ModeNone})
	if err != nil {
		t.Fatal(err)
	}
	s := m.NewScratch()
	defer s.Free()
	if !m.Match("anything.txt", s) {
		t.Error("ModeNone should match any name")
	}
}

func TestModeRegex(t *testing.T) {
	m, err := New(option.Options{Mode: option.ModeRegex, Pattern: `^c\..*$`})
	if err != nil {
		t.Fatal(err)
	}
	s := m.NewScratch()
	defer s.Free()

	if !m.Match("c.txt", s) {
		t.Error("expected c.txt to match")
	}
	if m.Match("d.txt", s) {
		t.Error("expected d.txt not to match")
	}
}

func TestModeRegexIgnoreCase(t *testing.T) {
	m, err := New(option.Options{Mode: option.ModeRegex, Pattern: "readme", ICase: true})
	if err != nil {
		t.Fatal(err)
	}
	s := m.NewScratch()
	if !m.Match("README", s) {
		t.Error("expected case-insensitive match")
	}
}

func TestModeRegexInvalidPattern(t *testing.T) {
	if _, err := New(option.Options{Mode: option.ModeRegex, Pattern: "("}); err == nil {
		t.Fatal("expected compile error for unbalanced group")
	}
}

func TestModeGlob(t *testing.T) {
	m, err := New(option.Options{Mode: option.ModeGlob, Pattern: "*.md"})
	if err != nil {
		t.Fatal(err)
	}
	s := m.NewScratch()
	if !m.Match("d.md", s) {
		t.Error("expected d.md to match *.md")
	}
	if m.Match("d.txt", s) {
		t.Error("expected d.txt not to match *.md")
	}
}

func TestModeGlobIgnoreCase(t *testing.T) {
	m, err := New(option.Options{Mode: option.ModeGlob, Pattern: "*.MD", ICase: true})
	if err != nil {
		t.Fatal(err)
	}
	s := m.NewScratch()
	if !m.Match("readme.md", s) {
		t.Error("expected case-insensitive glob match")
	}
}

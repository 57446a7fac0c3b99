// Package snapshot provides golden file testing for rendered terminal
// screens, plus helpers to find where things landed on them.
package snapshot

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
)

// GoldenDir is the default directory for golden files
const GoldenDir = "testdata/golden"

var (
	csiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)
	oscRegex = regexp.MustCompile(`\x1b\]8;;[^\x1b]*\x1b\\`)
)

// Snap provides snapshot testing functionality
type Snap struct {
	t         *testing.T
	goldenDir string
	update    bool
}

// New creates a new Snap instance for the given test. UPDATE_GOLDEN=1
// rewrites golden files instead of comparing against them.
func New(t *testing.T) *Snap {
	return &Snap{
		t:         t,
		goldenDir: GoldenDir,
		update:    os.Getenv("UPDATE_GOLDEN") == "1",
	}
}

// WithDir sets a custom golden file directory
func (s *Snap) WithDir(dir string) *Snap {
	s.goldenDir = dir
	return s
}

// Assert compares a rendered screen against a golden file.
func (s *Snap) Assert(name, actual string) {
	s.t.Helper()

	goldenPath := filepath.Join(s.goldenDir, name+".golden")
	normalized := Normalize(actual)

	if s.update {
		if err := os.MkdirAll(s.goldenDir, 0755); err != nil {
			s.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, []byte(normalized), 0644); err != nil {
			s.t.Fatalf("failed to write golden file: %v", err)
		}
		s.t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.t.Fatalf("Golden file not found: %s\nRun with UPDATE_GOLDEN=1 to create it.\nActual output:\n%s", goldenPath, normalized)
		}
		s.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != normalized {
		s.t.Errorf("Snapshot mismatch for %s\n\nExpected:\n%s\n\nActual:\n%s\n\nRun with UPDATE_GOLDEN=1 to update.",
			name, string(expected), normalized)
	}
}

// AssertContains checks that actual output contains the expected substring
func (s *Snap) AssertContains(actual, substr string) {
	s.t.Helper()
	normalized := Normalize(actual)
	if !strings.Contains(normalized, substr) {
		s.t.Errorf("Output does not contain expected substring.\nExpected to contain: %q\nActual:\n%s", substr, normalized)
	}
}

// AssertNotContains checks that actual output does NOT contain the substring
func (s *Snap) AssertNotContains(actual, substr string) {
	s.t.Helper()
	normalized := Normalize(actual)
	if strings.Contains(normalized, substr) {
		s.t.Errorf("Output unexpectedly contains substring: %q\nActual:\n%s", substr, normalized)
	}
}

// Normalize strips ANSI codes, unifies line endings and drops trailing
// whitespace so screens compare as plain text.
func Normalize(s string) string {
	s = StripANSI(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// StripANSI removes all ANSI escape codes from a string
func StripANSI(s string) string {
	s = csiRegex.ReplaceAllString(s, "")
	return oscRegex.ReplaceAllString(s, "")
}

// Lines returns the line count of the rendered output
func Lines(s string) int {
	return len(strings.Split(StripANSI(s), "\n"))
}

// Width returns the widest line of the rendered output in cells.
func Width(s string) int {
	maxWidth := 0
	for _, line := range strings.Split(s, "\n") {
		maxWidth = max(maxWidth, ansi.PrintableRuneWidth(line))
	}
	return maxWidth
}

// Find returns the cell where substr first appears on a rendered screen.
// Columns count cells, so wide runes before the match take two.
func Find(screen, substr string) (col, row int, ok bool) {
	for r, line := range strings.Split(StripANSI(screen), "\n") {
		if i := strings.Index(line, substr); i >= 0 {
			return runewidth.StringWidth(line[:i]), r, true
		}
	}
	return 0, 0, false
}

// Cell returns the rune drawn at (col, row), or 0 when nothing is there.
func Cell(screen string, col, row int) rune {
	lines := strings.Split(StripANSI(screen), "\n")
	if row < 0 || row >= len(lines) || col < 0 {
		return 0
	}
	x := 0
	for _, r := range lines[row] {
		w := runewidth.RuneWidth(r)
		if col >= x && col < x+w {
			return r
		}
		x += w
	}
	return 0
}

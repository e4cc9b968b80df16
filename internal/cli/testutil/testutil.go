// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/leapstack-labs/dsfetch/internal/catalog"
	"github.com/leapstack-labs/dsfetch/internal/cli/output"
)

// SetupDatasetRoot creates a temporary datasets root in which the named
// default datasets are already installed. With no names, every default
// dataset is installed, so a setup run against it needs no network.
func SetupDatasetRoot(t *testing.T, names ...string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "datasets")
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	for _, d := range catalog.Default(root) {
		if len(names) > 0 && !want[d.Name] {
			continue
		}
		InstallDataset(t, d)
	}
	return root
}

// InstallDataset makes d look installed: its destination is populated and
// its marker exists.
func InstallDataset(t *testing.T, d catalog.Dataset) {
	t.Helper()

	marker := d.Marker
	if marker == d.Dest {
		marker = filepath.Join(d.Dest, "placeholder.txt")
	}
	if err := os.MkdirAll(filepath.Dir(marker), 0o750); err != nil {
		t.Fatalf("failed to create directory for %s: %v", marker, err)
	}
	if err := os.WriteFile(marker, []byte("test\n"), 0o600); err != nil {
		t.Fatalf("failed to create %s: %v", marker, err)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// GetTestdataDir returns the path to the testdata directory.
func GetTestdataDir(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}

	// Try different relative paths based on where tests are run from
	candidates := []string{
		filepath.Join(wd, "testdata"),
		filepath.Join(wd, "..", "testdata"),
		filepath.Join(wd, "..", "..", "testdata"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	t.Fatalf("testdata directory not found, tried: %v", candidates)
	return ""
}

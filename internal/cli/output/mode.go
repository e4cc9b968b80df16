// Package output renders human and machine readable CLI output.
//
// Text output is styled with lipgloss when writing to a terminal. Plain
// output carries the same lines without ANSI codes, and JSON output keeps
// stdout machine readable by sending every human line to stderr.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode selects how output is rendered.
type Mode string

// Output modes.
const (
	ModeAuto  Mode = "auto"  // text on a TTY, plain otherwise
	ModeText  Mode = "text"  // styled
	ModePlain Mode = "plain" // no ANSI codes
	ModeJSON  Mode = "json"  // machine readable
)

// Modes lists every accepted mode, in help order.
var Modes = []Mode{ModeAuto, ModeText, ModePlain, ModeJSON}

// ParseMode validates s. An empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ModeAuto, nil
	}
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown output mode %q (expected one of auto, text, plain, json)", s)
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

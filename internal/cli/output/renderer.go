package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Severity prefixes.
const (
	PrefixOK      = "[OK]"
	PrefixInfo    = "[INFO]"
	PrefixWarning = "[WARNING]"
	PrefixError   = "[ERROR]"
)

// Renderer writes CLI output according to a Mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}

	lg := lipgloss.NewRenderer(r.textOut())
	if r.EffectiveMode() != ModeText {
		lg.SetColorProfile(termenv.Ascii)
	} else if isTTY {
		lg.SetColorProfile(termenv.ANSI)
	}
	r.styles = NewStyles(lg)
	return r
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModePlain
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns stdout.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// textOut is where human readable lines go: stdout, or stderr in JSON mode.
func (r *Renderer) textOut() io.Writer {
	if r.mode == ModeJSON {
		return r.errOut
	}
	return r.out
}

// ProgressWriter returns where download progress is drawn.
func (r *Renderer) ProgressWriter() io.Writer {
	return r.textOut()
}

// Println writes s followed by a newline.
func (r *Renderer) Println(s string) {
	_, _ = fmt.Fprintln(r.textOut(), s)
}

// Printf writes a formatted string.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.textOut(), format, args...)
}

// Header prints a banner: a blank line, a rule, the centered title, a rule
// and a blank line.
func (r *Renderer) Header(title string) {
	rule := r.styles.Rule.Render(strings.Repeat("=", HeaderWidth))
	centered := lipgloss.PlaceHorizontal(HeaderWidth, lipgloss.Center, title)
	r.Println("")
	r.Println(rule)
	r.Println(r.styles.Header.Render(strings.TrimRight(centered, " ")))
	r.Println(rule)
	r.Println("")
}

// Success prints an [OK] line.
func (r *Renderer) Success(msg string) {
	r.status(r.styles.Success, PrefixOK, msg)
}

// Info prints an [INFO] line.
func (r *Renderer) Info(msg string) {
	r.status(r.styles.Info, PrefixInfo, msg)
}

// Warning prints a [WARNING] line.
func (r *Renderer) Warning(msg string) {
	r.status(r.styles.Warning, PrefixWarning, msg)
}

// Error prints an [ERROR] line.
func (r *Renderer) Error(msg string) {
	r.status(r.styles.Error, PrefixError, msg)
}

func (r *Renderer) status(style lipgloss.Style, prefix, msg string) {
	r.Println(style.Render(prefix) + " " + msg)
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

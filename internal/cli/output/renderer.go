// Package output renders command results for terminals, markdown consumers
// and machines.
//
// In auto mode the renderer writes plain text when stdout is a terminal and
// markdown otherwise, so piped output is ready to paste into documents.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// OutputMode selects how results are written.
type OutputMode string //nolint:revive // output.OutputMode reads better at call sites than output.Kind

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Mode converts a config value into an OutputMode. Unknown values map to
// ModeAuto.
func Mode(s string) OutputMode {
	switch OutputMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeText:
		return ModeText
	case ModeMarkdown:
		return ModeMarkdown
	case ModeJSON:
		return ModeJSON
	default:
		return ModeAuto
	}
}

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   OutputMode
	isTTY  bool
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return &Renderer{out: out, errOut: errOut, mode: mode, isTTY: isTTY}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int on supported platforms
}

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success writes a status line to stderr, green on terminals.
func (r *Renderer) Success(msg string) {
	r.status(text.FgGreen, "✓ ", msg)
}

// Warning writes a warning to stderr, yellow on terminals.
func (r *Renderer) Warning(msg string) {
	r.status(text.FgYellow, "! ", msg)
}

// Error writes an error message to stderr, red on terminals.
func (r *Renderer) Error(msg string) {
	r.status(text.FgRed, "✗ ", msg)
}

func (r *Renderer) status(color text.Color, prefix, msg string) {
	line := prefix + msg
	if r.isTTY && r.EffectiveMode() == ModeText {
		line = color.Sprint(line)
	}
	_, _ = fmt.Fprintln(r.errOut, line)
}

// JSON writes v as indented JSON to stdout.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, title string) string {
	return strings.Repeat("#", level) + " " + title
}

// FormatCodeBlock returns a fenced markdown code block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

type rendererKey struct{}

// WithRenderer returns a copy of ctx carrying r.
func WithRenderer(ctx context.Context, r *Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// FromContext returns the renderer stored by WithRenderer.
func FromContext(ctx context.Context) (*Renderer, bool) {
	r, ok := ctx.Value(rendererKey{}).(*Renderer)
	return r, ok
}

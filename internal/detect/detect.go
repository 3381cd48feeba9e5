// Package detect inspects input text and the output terminal.
package detect

import (
	"bytes"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/dkoosis/ansifold/pkg/ansi"
)

// Format represents what kind of text the input holds.
type Format int

const (
	Unknown Format = iota
	Plain          // text without SGR directives
	Styled         // text carrying at least one SGR directive
)

func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Styled:
		return "styled"
	default:
		return "unknown"
	}
}

// Sniff examines data to tell plain from styled text. Empty or
// whitespace-only input is Unknown.
func Sniff(data []byte) Format {
	if len(bytes.TrimSpace(data)) == 0 {
		return Unknown
	}
	if ansi.HasDirective(string(data)) {
		return Styled
	}
	return Plain
}

// DefaultWidth is used when the output is not a terminal or its size is
// unknown.
const DefaultWidth = 80

// Width returns the column count of the terminal behind w, defaulting to
// DefaultWidth.
func Width(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return DefaultWidth
}

// IsTerminal reports whether w is a terminal, Cygwin and MSYS ptys
// included.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) || isatty.IsCygwinTerminal(f.Fd())
}

// SupportsStyling reports whether SGR output to w will be rendered: NO_COLOR
// is unset, w is a terminal and the terminal has at least basic colours.
func SupportsStyling(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !IsTerminal(w) {
		return false
	}
	return termenv.NewOutput(w).Profile != termenv.Ascii
}

// Terminal answers width and styling questions for one output.
type Terminal struct {
	out io.Writer
}

// For returns the Terminal behind w.
func For(w io.Writer) Terminal {
	return Terminal{out: w}
}

// Width is Width(out).
func (t Terminal) Width() int { return Width(t.out) }

// SupportsStyling is SupportsStyling(out).
func (t Terminal) SupportsStyling() bool { return SupportsStyling(t.out) }

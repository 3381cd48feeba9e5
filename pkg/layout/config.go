// Package layout wraps, indents, pads, justifies and column-composes text for
// fixed-width terminals while keeping SGR styling correct on every line.
package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// TrimMode controls how many spaces Trim removes from one side of a line.
// All removes every contiguous space; otherwise at most Count spaces go.
type TrimMode struct {
	All   bool
	Count int
}

// Trim presets.
var (
	TrimAll  = TrimMode{All: true}
	TrimNone = TrimMode{}
)

// TrimCount trims at most n spaces.
func TrimCount(n int) TrimMode {
	return TrimMode{Count: n}
}

// Enabled reports whether the mode trims anything.
func (m TrimMode) Enabled() bool {
	return m.All || m.Count > 0
}

// Value returns the mode as a bool or an int, the shapes accepted by
// ParseTrimMode.
func (m TrimMode) Value() any {
	if m.All {
		return true
	}
	if m.Count > 0 {
		return m.Count
	}
	return false
}

func (m TrimMode) String() string {
	return fmt.Sprint(m.Value())
}

// ParseTrimMode accepts "true", "false" or a non-negative integer.
func ParseTrimMode(s string) (TrimMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "on":
		return TrimAll, nil
	case "false", "no", "off", "":
		return TrimNone, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return TrimNone, fmt.Errorf("trim mode %q: want true, false or a count", s)
	}
	return TrimCount(n), nil
}

// Config is the complete configuration of one layout call.
type Config struct {
	// Styling re-emits SGR directives on the output. When false, directives
	// in the input are dropped.
	Styling bool
	// Width is the total line width in columns, padding included.
	Width int

	FirstLineIndent string
	HangingIndent   string
	PaddingLeft     string
	PaddingRight    string
	// Filler pads short lines to Width. Empty leaves them short.
	Filler string
	// HardBreak marks where an overlong word was split.
	HardBreak string

	TrimStart TrimMode
	TrimEnd   TrimMode

	Justify bool
	// JustifyLimit is the widest gap, in spaces, justification may produce.
	// Zero means unlimited.
	JustifyLimit int
}

// Options overrides part of a Config. Nil fields inherit.
type Options struct {
	Styling         *bool
	Width           *int
	FirstLineIndent *string
	HangingIndent   *string
	PaddingLeft     *string
	PaddingRight    *string
	Filler          *string
	HardBreak       *string
	TrimStart       *TrimMode
	TrimEnd         *TrimMode
	Justify         *bool
	JustifyLimit    *int
}

// Bool, Int, String and TrimOpt return pointers for building Options.
func Bool(v bool) *bool { return &v }

func Int(v int) *int { return &v }

func String(v string) *string { return &v }

func TrimOpt(v TrimMode) *TrimMode { return &v }

// Apply returns c with every non-nil field of o applied.
func (o Options) Apply(c Config) Config {
	set(&c.Styling, o.Styling)
	set(&c.Width, o.Width)
	set(&c.FirstLineIndent, o.FirstLineIndent)
	set(&c.HangingIndent, o.HangingIndent)
	set(&c.PaddingLeft, o.PaddingLeft)
	set(&c.PaddingRight, o.PaddingRight)
	set(&c.Filler, o.Filler)
	set(&c.HardBreak, o.HardBreak)
	set(&c.TrimStart, o.TrimStart)
	set(&c.TrimEnd, o.TrimEnd)
	set(&c.Justify, o.Justify)
	set(&c.JustifyLimit, o.JustifyLimit)
	return c
}

// Merge returns o with every non-nil field of over taking precedence.
func (o Options) Merge(over Options) Options {
	pick(&o.Styling, over.Styling)
	pick(&o.Width, over.Width)
	pick(&o.FirstLineIndent, over.FirstLineIndent)
	pick(&o.HangingIndent, over.HangingIndent)
	pick(&o.PaddingLeft, over.PaddingLeft)
	pick(&o.PaddingRight, over.PaddingRight)
	pick(&o.Filler, over.Filler)
	pick(&o.HardBreak, over.HardBreak)
	pick(&o.TrimStart, over.TrimStart)
	pick(&o.TrimEnd, over.TrimEnd)
	pick(&o.Justify, over.Justify)
	pick(&o.JustifyLimit, over.JustifyLimit)
	return o
}

// Options returns c as a fully populated override set.
func (c Config) Options() Options {
	return Options{
		Styling:         Bool(c.Styling),
		Width:           Int(c.Width),
		FirstLineIndent: String(c.FirstLineIndent),
		HangingIndent:   String(c.HangingIndent),
		PaddingLeft:     String(c.PaddingLeft),
		PaddingRight:    String(c.PaddingRight),
		Filler:          String(c.Filler),
		HardBreak:       String(c.HardBreak),
		TrimStart:       TrimOpt(c.TrimStart),
		TrimEnd:         TrimOpt(c.TrimEnd),
		Justify:         Bool(c.Justify),
		JustifyLimit:    Int(c.JustifyLimit),
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		cp := *v
		*dst = &cp
	}
}

// ColumnOptions configures a column layout. The embedded Options are shared
// by every column; their Width is the total width of the grid.
type ColumnOptions struct {
	Options
	PaddingMiddle *string
}

// Merge returns o with every non-nil field of over taking precedence.
func (o ColumnOptions) Merge(over ColumnOptions) ColumnOptions {
	o.Options = o.Options.Merge(over.Options)
	pick(&o.PaddingMiddle, over.PaddingMiddle)
	return o
}

// Column is one block of a column layout. Options override the shared
// column options for this column only; a set Width claims that many columns.
type Column struct {
	Content string
	Options Options
}

// Validate reports configuration errors that would make layout impossible.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Value: c.Width, Reason: "must be positive"}
	}
	usable := c.Width - Width(c.PaddingLeft) - Width(c.PaddingRight)
	if usable <= 0 {
		return &ConfigError{Field: "width", Value: c.Width, Reason: "padding leaves no room for text"}
	}
	// An overlong word is split as head plus marker, so a line must hold
	// the marker and at least one character, even for text that would
	// never need splitting.
	indent := max(Width(c.FirstLineIndent), Width(c.HangingIndent))
	if usable-indent <= Width(c.HardBreak) {
		return &ConfigError{
			Field:  "width",
			Value:  c.Width,
			Reason: fmt.Sprintf("%d columns after padding and indent cannot fit hard break %q and a character", usable-indent, c.HardBreak),
		}
	}
	if c.JustifyLimit < 0 {
		return &ConfigError{Field: "justify_limit", Value: c.JustifyLimit, Reason: "must not be negative"}
	}
	return nil
}

package layout

import (
	"strings"

	"github.com/dkoosis/ansifold/pkg/ansi"
)

// hardBreakRoom is the free space a line needs before an overlong word is
// started on it rather than on a fresh line.
const hardBreakRoom = 3

// inserted marks a rendered rune that has no source position.
const inserted = -1

// cell is one rendered rune and the plain-text offset it came from.
type cell struct {
	r   rune
	src int
}

// line is a laid-out line before styling and padding.
type line struct {
	cells []cell
	// natural lines end at a newline or at the end of the text and are
	// never justified.
	natural bool
}

func (l *line) add(w word) {
	for i, r := range w.runes {
		l.cells = append(l.cells, cell{r: r, src: w.start + i})
	}
}

func (l *line) addInserted(s string) {
	for _, r := range s {
		l.cells = append(l.cells, cell{r: r, src: inserted})
	}
}

// Lines lays text out with o applied over the process-wide defaults.
func Lines(text string, o Options) ([]string, error) {
	return o.Apply(DefaultConfig()).Lines(text)
}

// Wrap is Lines joined by newlines. One column of the width is given up to
// the newline.
func Wrap(text string, o Options) (string, error) {
	c := o.Apply(DefaultConfig())
	c.Width--
	lines, err := c.Lines(text)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Lines lays out text, which may contain style directives.
func (c Config) Lines(text string) ([]string, error) {
	return c.LinesOf(ansi.Split(text))
}

// LinesOf lays out text that has already been split from its styles.
func (c Config) LinesOf(sep ansi.Separated) ([]string, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	e := engine{
		cfg:           c,
		width:         c.Width - Width(c.PaddingLeft) - Width(c.PaddingRight),
		firstIndent:   Width(c.FirstLineIndent),
		hangingIndent: Width(c.HangingIndent),
		hardBreak:     Width(c.HardBreak),
	}
	e.indent = e.firstIndent
	lines := e.wrap(segment([]rune(sep.Plain)))

	rendered := make([]string, len(lines))
	for i, l := range lines {
		if c.Styling {
			rendered[i] = e.style(l, sep.Events)
		} else {
			rendered[i] = plainText(l)
		}
	}
	for i := range rendered {
		rendered[i] = e.finish(i, lines[i], rendered[i])
	}
	return rendered, nil
}

type engine struct {
	cfg           Config
	width         int // usable width, padding excluded
	firstIndent   int
	hangingIndent int
	hardBreak     int

	lines     []line
	cur       line
	lineWidth int
	indent    int

	// styling state, carried across lines
	nextEvent int
	active    []int
}

func (e *engine) closeLine(natural bool) {
	e.cur.natural = natural
	e.lines = append(e.lines, e.cur)
	e.cur = line{}
	e.lineWidth = 0
	e.indent = e.hangingIndent
}

func (e *engine) wrap(queue []word) []line {
	for len(queue) > 0 {
		orig := queue[0]
		queue = queue[1:]

		w := orig
		newline := w.endsWith('\n')
		if newline {
			w = w.withoutTrailing('\n')
		}
		available := e.width - e.lineWidth - e.indent
		trimmed := w.withoutTrailing(' ')
		wordWidth := runesWidth(w.runes)
		trimmedWidth := runesWidth(trimmed.runes)

		switch {
		case wordWidth <= available:
			e.cur.add(w)
			e.lineWidth += wordWidth

		case trimmedWidth <= available:
			e.cur.add(trimmed)
			e.closeLine(false)

		case trimmedWidth > e.width-e.indent:
			// No line can hold the word: place what fits, mark the split and
			// queue the rest.
			rest := e.hardSplit(w, available)
			switch {
			case len(rest.runes) > 0:
				if newline {
					rest.runes = append(rest.runes[:len(rest.runes):len(rest.runes)], '\n')
				}
				queue = append([]word{rest}, queue...)
			case newline:
				e.lines[len(e.lines)-1].natural = true
			}
			continue

		default:
			// Fits on an empty line: close this one and try again.
			e.closeLine(false)
			queue = append([]word{orig}, queue...)
			continue
		}

		if newline {
			e.closeLine(true)
		}
	}
	if len(e.cur.cells) > 0 {
		e.closeLine(true)
	}
	if n := len(e.lines); n > 0 {
		e.lines[n-1].natural = true
	}
	return e.lines
}

// hardSplit places the head of an overlong word followed by the hard-break
// marker and returns the part still to be placed.
func (e *engine) hardSplit(w word, available int) word {
	if available > hardBreakRoom {
		if n := e.fitting(w, available); n > 0 {
			head, rest := w.split(n)
			e.placeBroken(head)
			return rest
		}
	}
	if len(e.cur.cells) > 0 {
		e.closeLine(false)
	}
	n := e.fitting(w, e.width-e.indent)
	if n == 0 {
		// A wide rune and the marker do not fit together: the rune goes
		// on a line of its own, unmarked.
		head, rest := w.split(1)
		e.cur.add(head)
		log().Debug().
			Str("head", string(head.runes)).
			Int("line", len(e.lines)).
			Msg("hard break without marker")
		e.closeLine(false)
		return rest
	}
	head, rest := w.split(n)
	e.placeBroken(head)
	return rest
}

func (e *engine) placeBroken(head word) {
	e.cur.add(head)
	e.cur.addInserted(e.cfg.HardBreak)
	log().Debug().
		Str("head", string(head.runes)).
		Int("line", len(e.lines)).
		Msg("hard break")
	e.closeLine(false)
}

// fitting counts the leading runes of w that fit in width columns alongside
// the hard-break marker.
func (e *engine) fitting(w word, width int) int {
	room := width - e.hardBreak
	n := 0
	for _, r := range w.runes {
		rw := runeWidth(r)
		if rw > room {
			break
		}
		room -= rw
		n++
	}
	return n
}

func plainText(l line) string {
	var sb strings.Builder
	for _, c := range l.cells {
		sb.WriteRune(c.r)
	}
	return sb.String()
}

// style renders l with the style active at each rune. Every line opens with
// a reset plus the active set and closes with a reset, so a line stands on
// its own.
func (e *engine) style(l line, events []ansi.Event) string {
	var sb strings.Builder
	for col, c := range l.cells {
		changed := false
		if c.src != inserted {
			for e.nextEvent < len(events) && events[e.nextEvent].Position <= c.src {
				e.active = events[e.nextEvent].Styles
				e.nextEvent++
				changed = true
			}
		}
		switch {
		case col == 0:
			codes := append([]int{ansi.Reset}, e.active...)
			sb.WriteString(ansi.Encode(ansi.Normalize(codes)))
		case changed:
			sb.WriteString(ansi.Encode(ansi.Normalize(e.active)))
		}
		sb.WriteRune(c.r)
		if col == len(l.cells)-1 {
			sb.WriteString(ansi.ResetDirective)
		}
	}
	return sb.String()
}

// finish trims, justifies, indents and pads rendered line i.
func (e *engine) finish(i int, l line, s string) string {
	c := e.cfg
	indent, indentWidth := c.HangingIndent, e.hangingIndent
	if i == 0 {
		indent, indentWidth = c.FirstLineIndent, e.firstIndent
	}

	trimEnd := c.TrimEnd
	if !trimEnd.Enabled() && c.Justify {
		trimEnd = TrimAll
	}
	s = Trim(s, c.TrimStart, trimEnd)
	if c.Justify && !l.natural {
		s = e.justify(s, e.width-indentWidth)
	}

	prefix := c.PaddingLeft + indent
	suffix := fill(e.width-Width(s)-indentWidth, c.Filler) + c.PaddingRight
	if c.Styling {
		if prefix != "" {
			prefix = ansi.ResetDirective + prefix
		}
		if suffix != "" {
			suffix += ansi.ResetDirective
		}
	}
	return prefix + s + suffix
}

func (e *engine) justify(s string, width int) string {
	if limit := e.cfg.JustifyLimit; limit > 0 {
		if gap := widestGap(s, width); gap > limit {
			log().Debug().
				Int("gap", gap).
				Int("limit", limit).
				Str("text", ansi.Strip(s)).
				Msg("justify skipped")
			return s
		}
	}
	return Justify(s, width)
}

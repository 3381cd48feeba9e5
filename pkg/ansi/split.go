package ansi

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// directive matches ESC "[" code (";" code)* "m" with either escape character.
var directive = regexp.MustCompile("[\u001b\u009b]\\[((?:\\d+;?)+)m")

// Event records that the active style set changes at Position, a rune
// offset into the plain text, to Styles.
type Event struct {
	Position int
	Styles   []int
}

// Separated is text with its style directives removed and recorded as
// events.
type Separated struct {
	Plain  string
	Events []Event
}

// Split removes style directives from text and records, for every position
// where the style changes, the cumulative active set.
//
// Directives with no plain text between them collapse into one event.
// Event positions are strictly increasing rune offsets into Plain.
func Split(text string) Separated {
	var (
		plain   strings.Builder
		events  []Event
		active  []int
		cursor  int
		lastPos = -1
		from    int
	)
	for _, m := range directive.FindAllStringSubmatchIndex(text, -1) {
		before := text[from:m[0]]
		plain.WriteString(before)
		cursor += utf8.RuneCountInString(before)
		from = m[1]

		incoming := ParseParams(text[m[2]:m[3]])
		if lastPos == cursor {
			last := &events[len(events)-1]
			last.Styles = Adjust(last.Styles, incoming)
		} else {
			events = append(events, Event{
				Position: cursor,
				Styles:   Adjust(ClearDefaults(active), incoming),
			})
		}
		active = events[len(events)-1].Styles
		lastPos = cursor
	}
	plain.WriteString(text[from:])
	return Separated{Plain: plain.String(), Events: events}
}

// HasDirective reports whether text contains at least one style directive.
func HasDirective(text string) bool {
	return directive.MatchString(text)
}

// Strip removes every style directive from text.
func Strip(text string) string {
	if !strings.ContainsAny(text, "\u001b\u009b") {
		return text
	}
	return directive.ReplaceAllString(text, "")
}

// ParseParams parses the ";"-separated parameter list of a directive.
// Extended colour selections (38/48/58 followed by 5;n or 2;r;g;b) are
// dropped whole so their operands are not mistaken for style codes.
func ParseParams(params string) []int {
	fields := strings.Split(params, ";")
	codes := make([]int, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		if fields[i] == "" {
			continue
		}
		code, err := strconv.Atoi(fields[i])
		if err != nil {
			continue
		}
		if code == 38 || code == 48 || code == 58 {
			i += extendedOperands(fields[i+1:])
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

func extendedOperands(rest []string) int {
	if len(rest) == 0 {
		return 0
	}
	n := 1
	switch rest[0] {
	case "5":
		n++
	case "2":
		n += 3
	}
	if n > len(rest) {
		n = len(rest)
	}
	return n
}

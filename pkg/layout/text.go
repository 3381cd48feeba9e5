package layout

import (
	"regexp"
	"sort"
	"strings"
)

var (
	trimStartRe = regexp.MustCompile("^((?:[\u001b\u009b]\\[(?:\\d+;?)+m)*) ")
	trimEndRe   = regexp.MustCompile(" ((?:[\u001b\u009b]\\[(?:\\d+;?)+m)*)$")
)

// Trim removes spaces from the start and end of text. Style directives
// directly next to a trimmed space are kept.
func Trim(text string, start, end TrimMode) string {
	text = trimWith(text, trimStartRe, start)
	return trimWith(text, trimEndRe, end)
}

func trimWith(text string, re *regexp.Regexp, mode TrimMode) string {
	for n := 0; mode.All || n < mode.Count; n++ {
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			break
		}
		kept := ""
		if loc[2] >= 0 {
			kept = text[loc[2]:loc[3]]
		}
		text = text[:loc[0]] + kept + text[loc[1]:]
	}
	return text
}

// Justify widens text to width columns by adding spaces to the gaps between
// words, leftmost gaps first. Text that has no gaps or is already wide
// enough is returned unchanged.
func Justify(text string, width int) string {
	words := strings.Split(text, " ")
	gaps := len(words) - 1
	extra := width - Width(text)
	if gaps == 0 || extra <= 0 {
		return text
	}
	share, rest := extra/gaps, extra%gaps

	var sb strings.Builder
	for i, w := range words {
		sb.WriteString(w)
		if i == gaps {
			break
		}
		n := share + 1
		if i < rest {
			n++
		}
		sb.WriteString(strings.Repeat(" ", n))
	}
	return sb.String()
}

// widestGap is the widest gap, in spaces, Justify would produce.
func widestGap(text string, width int) int {
	gaps := strings.Count(text, " ")
	extra := width - Width(text)
	if gaps == 0 || extra <= 0 {
		return 1
	}
	return 1 + (extra+gaps-1)/gaps
}

// DefaultTransforms are applied by Transform before any caller replacements.
var DefaultTransforms = []Replacement{
	{From: "\r\n", To: "\n"},
	{From: "\t", To: "  "},
}

// Replacement is one literal substitution.
type Replacement struct {
	From string
	To   string
}

// Transform applies the default replacements and then replacements to text.
// A key that matches a default replaces its value; other keys run after the
// defaults in key order.
func Transform(text string, replacements map[string]string) string {
	steps := make([]Replacement, 0, len(DefaultTransforms)+len(replacements))
	for _, d := range DefaultTransforms {
		if to, ok := replacements[d.From]; ok {
			d.To = to
		}
		steps = append(steps, d)
	}
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		if !isDefaultTransform(k) && k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		steps = append(steps, Replacement{From: k, To: replacements[k]})
	}

	for _, s := range steps {
		text = strings.ReplaceAll(text, s.From, s.To)
	}
	return text
}

func isDefaultTransform(from string) bool {
	for _, d := range DefaultTransforms {
		if d.From == from {
			return true
		}
	}
	return false
}

// fill repeats filler until it covers width columns, cutting the last
// repetition short if needed.
func fill(width int, filler string) string {
	if width <= 0 || Width(filler) <= 0 {
		return ""
	}
	var sb strings.Builder
	for Width(sb.String()) < width {
		sb.WriteString(filler)
	}
	out := []rune(sb.String())
	for len(out) > 0 && Width(string(out)) > width {
		out = out[:len(out)-1]
	}
	return string(out)
}

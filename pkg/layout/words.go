package layout

import "github.com/dkoosis/ansifold/pkg/ansi"

// Break characters end a word and stay attached to it.
var breaks = map[rune]bool{
	' ':      true,
	'-':      true,
	'\n':     true,
	'\u2007': true, // figure space
	'\u2060': true, // word joiner
}

// IsBreak reports whether r ends a word.
func IsBreak(r rune) bool {
	return breaks[r]
}

// Words splits text after every break character. Joining the result gives
// back the input. Unless keepStyles is set, style directives are removed
// first.
func Words(text string, keepStyles bool) []string {
	if !keepStyles {
		text = ansi.Split(text).Plain
	}
	segs := segment([]rune(text))
	out := make([]string, len(segs))
	for i, w := range segs {
		out[i] = string(w.runes)
	}
	return out
}

// word is a run of runes starting at rune offset start of the plain text.
type word struct {
	runes []rune
	start int
}

func segment(plain []rune) []word {
	var words []word
	from := 0
	for i, r := range plain {
		if breaks[r] {
			words = append(words, word{runes: plain[from : i+1], start: from})
			from = i + 1
		}
	}
	if from < len(plain) {
		words = append(words, word{runes: plain[from:], start: from})
	}
	return words
}

func (w word) endsWith(r rune) bool {
	return len(w.runes) > 0 && w.runes[len(w.runes)-1] == r
}

// withoutTrailing drops one trailing r, if present.
func (w word) withoutTrailing(r rune) word {
	if w.endsWith(r) {
		return word{runes: w.runes[:len(w.runes)-1], start: w.start}
	}
	return w
}

// split cuts w after n runes.
func (w word) split(n int) (word, word) {
	return word{runes: w.runes[:n], start: w.start},
		word{runes: w.runes[n:], start: w.start + n}
}

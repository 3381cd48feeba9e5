package layout

import (
	"maps"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/ansifold/pkg/ansi"
)

// ZeroWidthSpace occupies no columns. Column layout uses it as a marker.
const ZeroWidthSpace = '\u200b'

var (
	overridesMu sync.RWMutex
	overrides   = map[rune]int{ZeroWidthSpace: 0}
)

// Width returns the number of terminal columns s occupies. Style directives
// count zero; characters with an override count their override.
func Width(s string) int {
	s = ansi.Strip(s)

	overridesMu.RLock()
	defer overridesMu.RUnlock()

	width, from := 0, 0
	for i, r := range s {
		w, ok := overrides[r]
		if !ok {
			continue
		}
		width += runewidth.StringWidth(s[from:i]) + w
		from = i + utf8.RuneLen(r)
	}
	return width + runewidth.StringWidth(s[from:])
}

func runeWidth(r rune) int {
	overridesMu.RLock()
	w, ok := overrides[r]
	overridesMu.RUnlock()
	if ok {
		return w
	}
	return runewidth.RuneWidth(r)
}

func runesWidth(rs []rune) int {
	return Width(string(rs))
}

// SetWidthOverride makes r count as w columns.
func SetWidthOverride(r rune, w int) {
	overridesMu.Lock()
	defer overridesMu.Unlock()
	overrides[r] = w
}

// DeleteWidthOverride removes the override for r.
func DeleteWidthOverride(r rune) {
	overridesMu.Lock()
	defer overridesMu.Unlock()
	delete(overrides, r)
}

// WidthOverrides returns a copy of the current overrides.
func WidthOverrides() map[rune]int {
	overridesMu.RLock()
	defer overridesMu.RUnlock()
	return maps.Clone(overrides)
}

package ansi

import (
	"slices"
	"strconv"
	"strings"
)

// Normalize folds codes left to right and returns the minimal set that is
// active afterwards.
//
// A later code replaces an earlier code of the same group. Reset clears
// everything seen so far and is emitted first. A group default that arrives
// after a reset switches its group off and is itself dropped.
// Codes missing from the registry are dropped. The result is never empty: if
// nothing survives, it is []int{Reset}.
func Normalize(codes []int) []int {
	var (
		order    []string
		active   = map[string]int{}
		sawReset bool
	)
	for _, code := range codes {
		if code == Reset {
			sawReset = true
			order = order[:0]
			clear(active)
			continue
		}
		id, ok := Lookup(code)
		if !ok {
			continue
		}
		_, held := active[id.Group]
		if sawReset && id.IsDefault() {
			// After a reset a group default is the same as not setting
			// the group at all.
			if held {
				delete(active, id.Group)
				order = slices.DeleteFunc(order, func(g string) bool { return g == id.Group })
			}
			continue
		}
		if !held {
			order = append(order, id.Group)
		}
		active[id.Group] = code
	}

	out := make([]int, 0, len(order)+1)
	if sawReset {
		out = append(out, Reset)
	}
	for _, g := range order {
		out = append(out, active[g])
	}
	if len(out) == 0 {
		return []int{Reset}
	}
	return out
}

// Adjust applies incoming on top of previous.
func Adjust(previous, incoming []int) []int {
	all := make([]int, 0, len(previous)+len(incoming))
	all = append(all, previous...)
	return Normalize(append(all, incoming...))
}

// ClearDefaults drops every group default code, keeping the order of the
// rest. Unregistered codes, reset included, are dropped as well.
func ClearDefaults(codes []int) []int {
	out := make([]int, 0, len(codes))
	for _, code := range codes {
		if id, ok := Lookup(code); ok && !id.IsDefault() {
			out = append(out, code)
		}
	}
	return out
}

// Encode renders codes as a single directive, e.g. "\x1b[0;1m".
func Encode(codes []int) string {
	var sb strings.Builder
	sb.WriteRune(Escape)
	sb.WriteByte('[')
	for i, c := range codes {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Itoa(c))
	}
	sb.WriteByte('m')
	return sb.String()
}

// ResetDirective is Encode([]int{Reset}).
var ResetDirective = Encode([]int{Reset})

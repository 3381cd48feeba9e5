// Package ansi models SGR ("set graphic rendition") style codes: which codes
// exist, which of them are mutually exclusive, and how a sequence of codes
// applied over time collapses into the set that is actually active.
package ansi

import "sort"

// DefaultName is the name every group uses for the code that switches the
// group off.
const DefaultName = "default"

// Reset is the global reset code. It belongs to no group.
const Reset = 0

// Escape characters that introduce a style directive. The first is the one
// emitted by Encode; both are recognized on input.
const (
	Escape    = '\u001b'
	EscapeCSI = '\u009b'
)

// NamedCode is one entry of a Group.
type NamedCode struct {
	Name string
	Code int
}

// Group is a set of mutually exclusive style codes.
type Group struct {
	Name  string
	Codes []NamedCode
}

// Default returns the group's default (switch-off) code.
func (g Group) Default() int {
	for _, c := range g.Codes {
		if c.Name == DefaultName {
			return c.Code
		}
	}
	return Reset
}

// CodeID identifies a registered code.
type CodeID struct {
	Group    string
	Name     string
	FullName string
}

// IsDefault reports whether the code switches its group off.
func (id CodeID) IsDefault() bool {
	return id.Name == DefaultName
}

var registry = []Group{
	{Name: "foreground", Codes: append(colorCodes(30), NamedCode{DefaultName, 39})},
	{Name: "background", Codes: append(colorCodes(40), NamedCode{DefaultName, 49})},
	{Name: "blink", Codes: []NamedCode{{"slow", 5}, {"fast", 6}, {DefaultName, 25}}},
	{Name: "display", Codes: []NamedCode{{"conceal", 8}, {DefaultName, 28}}},
	{Name: "emphasis", Codes: []NamedCode{{"italic", 3}, {"fraktur", 20}, {DefaultName, 23}}},
	{Name: "font", Codes: []NamedCode{
		{DefaultName, 10},
		{"1", 11}, {"2", 12}, {"3", 13}, {"4", 14}, {"5", 15},
		{"6", 16}, {"7", 17}, {"8", 18}, {"9", 19},
	}},
	{Name: "frame", Codes: []NamedCode{
		{"framed", 51}, {"encircled", 52}, {"overlined", 53},
		{DefaultName, 54}, {"not-overlined", 55},
	}},
	{Name: "image", Codes: []NamedCode{{"negative", 7}, {DefaultName, 27}}},
	{Name: "strikeout", Codes: []NamedCode{{"strikeout", 9}, {DefaultName, 29}}},
	{Name: "underline", Codes: []NamedCode{{"single", 4}, {"double", 21}, {DefaultName, 24}}},
	{Name: "weight", Codes: []NamedCode{{"bold", 1}, {"faint", 2}, {DefaultName, 22}}},
}

var (
	byCode = map[int]CodeID{}
	byName = map[string]int{}
)

func init() {
	for _, g := range registry {
		for _, c := range g.Codes {
			if prev, dup := byCode[c.Code]; dup {
				panic("ansi: code registered twice: " + prev.FullName + " and " + g.Name + "." + c.Name)
			}
			id := CodeID{Group: g.Name, Name: c.Name, FullName: g.Name + "." + c.Name}
			byCode[c.Code] = id
			byName[id.FullName] = c.Code
		}
	}
}

func colorCodes(base int) []NamedCode {
	names := []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}
	codes := make([]NamedCode, 0, 2*len(names))
	for i, n := range names {
		codes = append(codes, NamedCode{n, base + i})
	}
	for i, n := range names {
		codes = append(codes, NamedCode{"intense-" + n, base + 60 + i})
	}
	return codes
}

// Lookup returns the group and name registered for code.
func Lookup(code int) (CodeID, bool) {
	id, ok := byCode[code]
	return id, ok
}

// CodeFor resolves a full name such as "weight.bold".
func CodeFor(fullName string) (int, bool) {
	c, ok := byName[fullName]
	return c, ok
}

// Registry returns a copy of the registered groups, in registration order.
func Registry() []Group {
	out := make([]Group, len(registry))
	for i, g := range registry {
		out[i] = Group{Name: g.Name, Codes: append([]NamedCode(nil), g.Codes...)}
	}
	return out
}

// Codes returns every registered code in ascending order.
func Codes() []int {
	codes := make([]int, 0, len(byCode))
	for c := range byCode {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

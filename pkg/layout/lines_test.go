package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ansifold/pkg/ansi"
	"github.com/dkoosis/ansifold/pkg/layout"
)

// unstyled is the baseline most layout cases run with: no styling, no
// filler and no trimming.
func unstyled(width int) layout.Options {
	return layout.Options{
		Styling: layout.Bool(false),
		Width:   layout.Int(width),
		Filler:  layout.String(""),
		TrimEnd: layout.TrimOpt(layout.TrimNone),
	}
}

func TestLines_Unstyled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  layout.Options
		want  []string
	}{
		{
			name:  "exact line length",
			input: "0123456789 123456789 1",
			opts:  unstyled(20),
			want:  []string{"0123456789 123456789", "1"},
		},
		{
			name:  "line ends in space",
			input: "0123456789 12345678 01",
			opts:  unstyled(20),
			want:  []string{"0123456789 12345678 ", "01"},
		},
		{
			name:  "line ends in dash",
			input: "0123456789 12345678-01",
			opts:  unstyled(20),
			want:  []string{"0123456789 12345678-", "01"},
		},
		{
			name:  "word exactly as wide as a line",
			input: "0123 56789012345678901234 6789 1234",
			opts:  unstyled(20),
			want:  []string{"0123 ", "56789012345678901234", "6789 1234"},
		},
		{
			name:  "overlong word starts on the current line",
			input: "0123 5678901234567890123456789 1234",
			opts:  unstyled(20),
			want:  []string{"0123 56789012345678-", "90123456789 1234"},
		},
		{
			name:  "overlong word moves to the next line",
			input: "012345 7890123456 8901234567890123456789 1234",
			opts:  unstyled(20),
			want:  []string{"012345 7890123456 ", "8901234567890123456-", "789 1234"},
		},
		{
			name:  "overlong word over three lines",
			input: "0123 56789012345678901234567890123456789012345 6789 1234",
			opts:  unstyled(20),
			want:  []string{"0123 56789012345678-", "9012345678901234567-", "89012345 6789 1234"},
		},
		{
			name:  "overlong word with first line indent",
			input: "2345678901234567890 23456789 1234",
			opts:  unstyled(20).Merge(layout.Options{FirstLineIndent: layout.String("  ")}),
			want:  []string{"  23456789012345678-", "90 23456789 1234"},
		},
		{
			name:  "overlong word with hanging indent",
			input: "0123 567890123456789012345 789 1234",
			opts:  unstyled(20).Merge(layout.Options{HangingIndent: layout.String("  ")}),
			want:  []string{"0123 56789012345678-", "  9012345 789 1234"},
		},
		{
			name:  "new line",
			input: "0123\n012 4567",
			opts:  unstyled(10),
			want:  []string{"0123", "012 4567"},
		},
		{
			name:  "blank line kept",
			input: "ab\n\ncd",
			opts:  unstyled(10),
			want:  []string{"ab", "", "cd"},
		},
		{
			name:  "overlong word ending in a new line",
			input: "0123456789abc\nde",
			opts:  unstyled(10),
			want:  []string{"012345678-", "9abc", "de"},
		},
		{
			name:  "custom hard break",
			input: "0123456789abcdef",
			opts:  unstyled(10).Merge(layout.Options{HardBreak: layout.String("~>")}),
			want:  []string{"01234567~>", "89abcdef"},
		},
		{
			name:  "filler",
			input: "012345 789 012345 01234567",
			opts:  unstyled(10).Merge(layout.Options{Filler: layout.String("abc")}),
			want:  []string{"012345 789", "012345 abc", "01234567ab"},
		},
		{
			name:  "padding left",
			input: "12345 789 123",
			opts:  unstyled(10).Merge(layout.Options{Filler: layout.String(" "), PaddingLeft: layout.String(">")}),
			want:  []string{">12345 789", ">123      "},
		},
		{
			name:  "padding right",
			input: "12345 789 123",
			opts:  unstyled(10).Merge(layout.Options{Filler: layout.String(" "), PaddingRight: layout.String("<")}),
			want:  []string{"12345 789<", "123      <"},
		},
		{
			name:  "first line indent",
			input: "2345 789 012345",
			opts:  unstyled(10).Merge(layout.Options{Filler: layout.String(" "), FirstLineIndent: layout.String("  ")}),
			want:  []string{"  2345 789", "012345    "},
		},
		{
			name:  "hanging indent",
			input: "012345 789 2345",
			opts:  unstyled(10).Merge(layout.Options{Filler: layout.String(" "), HangingIndent: layout.String("  ")}),
			want:  []string{"012345 789", "  2345    "},
		},
		{
			name:  "trim end",
			input: "0123 5678 0123",
			opts:  unstyled(10).Merge(layout.Options{TrimEnd: layout.TrimOpt(layout.TrimAll)}),
			want:  []string{"0123 5678", "0123"},
		},
		{
			name:  "trim start",
			input: "  ab",
			opts:  unstyled(10).Merge(layout.Options{TrimStart: layout.TrimOpt(layout.TrimCount(1))}),
			want:  []string{" ab"},
		},
		{
			name:  "wide characters",
			input: "古古古 古古",
			opts:  unstyled(8),
			want:  []string{"古古古 ", "古古"},
		},
		{
			name:  "wide character alone when the marker leaves no room",
			input: "古古古",
			opts:  unstyled(2).Merge(layout.Options{Filler: layout.String(" ")}),
			want:  []string{"古", "古", "古"},
		},
		{
			name:  "narrowest width that fits marker and a character",
			input: "a b",
			opts:  unstyled(2),
			want:  []string{"a ", "b"},
		},
		{
			name:  "styles dropped",
			input: "\x1b[1mbold\x1b[22m text",
			opts:  unstyled(20),
			want:  []string{"bold text"},
		},
		{
			name:  "empty text",
			input: "",
			opts:  unstyled(20),
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := layout.Lines(tt.input, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLines_Justify(t *testing.T) {
	t.Parallel()

	justified := unstyled(20).Merge(layout.Options{Justify: layout.Bool(true)})

	t.Run("across lines", func(t *testing.T) {
		t.Parallel()
		input := "0123 56 89 abcdef " +
			"012 45678 0abc efg " +
			"01234567890abcdefghi " +
			"01234 67"
		got, err := layout.Lines(input, justified)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"0123  56  89  abcdef",
			"012  45678  0abc efg",
			"01234567890abcdefghi",
			"01234 67",
		}, got)
	})

	t.Run("new lines end paragraphs", func(t *testing.T) {
		t.Parallel()
		input := "0123 56 89 abcdef\n" +
			"012 45678 0abc efg " +
			"01234567890abcdefghi " +
			"01234 67"
		got, err := layout.Lines(input, justified)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"0123 56 89 abcdef",
			"012  45678  0abc efg",
			"01234567890abcdefghi",
			"01234 67",
		}, got)
	})

	t.Run("gap limit", func(t *testing.T) {
		t.Parallel()
		input := "ab cd efghijklmnopqrstu"

		got, err := layout.Lines(input, justified.Merge(layout.Options{JustifyLimit: layout.Int(3)}))
		require.NoError(t, err)
		assert.Equal(t, []string{"ab cd", "efghijklmnopqrstu"}, got)

		got, err = layout.Lines(input, justified.Merge(layout.Options{JustifyLimit: layout.Int(0)}))
		require.NoError(t, err)
		assert.Equal(t, []string{"ab                cd", "efghijklmnopqrstu"}, got)
	})
}

// formats maps every style change in a rendered line to its position.
func formats(line string) map[int][]int {
	out := map[int][]int{}
	for _, e := range ansi.Split(line).Events {
		out[e.Position] = e.Styles
	}
	return out
}

func TestLines_Styled(t *testing.T) {
	t.Parallel()

	opts := layout.Options{
		Styling: layout.Bool(true),
		Width:   layout.Int(20),
		Filler:  layout.String(""),
		TrimEnd: layout.TrimOpt(layout.TrimNone),
	}
	bold := func(s string) string { return "\x1b[1m" + s + "\x1b[22m" }

	tests := []struct {
		name  string
		input string
		want  []map[int][]int
	}{
		{
			name:  "ends at line length",
			input: "0123456789 " + bold("123456789") + " 1",
			want: []map[int][]int{
				{0: {0}, 11: {1}, 20: {0}},
				{0: {0}, 1: {0}},
			},
		},
		{
			name:  "ends before line length",
			input: "0123456789 " + bold("12345") + "6789 1",
			want: []map[int][]int{
				{0: {0}, 11: {1}, 16: {22}, 20: {0}},
				{0: {0}, 1: {0}},
			},
		},
		{
			name:  "traverses multiple lines",
			input: "0123456789 " + bold("1234567 012345") + " 789",
			want: []map[int][]int{
				{0: {0}, 11: {1}, 19: {0}},
				{0: {0, 1}, 6: {22}, 10: {0}},
			},
		},
		{
			name:  "traverses new line",
			input: "012 " + bold("45\n0123") + " 567",
			want: []map[int][]int{
				{0: {0}, 4: {1}, 6: {0}},
				{0: {0, 1}, 4: {22}, 8: {0}},
			},
		},
		{
			// Each style is closed and reopened around the new line, as
			// styling libraries do.
			name: "new format per line",
			input: "01\n" +
				"\x1b[1m23\x1b[22m\n\x1b[1m\x1b[22m" +
				"\x1b[3m45\x1b[23m\n" +
				"\x1b[4m67\x1b[24m",
			want: []map[int][]int{
				{0: {0}, 2: {0}},
				{0: {0, 1}, 2: {0}},
				{0: {0, 3}, 2: {0}},
				{0: {0, 4}, 2: {0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lines, err := layout.Lines(tt.input, opts)
			require.NoError(t, err)
			require.Len(t, lines, len(tt.want))
			for i, line := range lines {
				assert.Equal(t, tt.want[i], formats(line), "line %d: %q", i, line)
			}
		})
	}
}

func TestLines_StyledHardBreak(t *testing.T) {
	t.Parallel()

	lines, err := layout.Lines("\x1b[31m0123456789abc\x1b[39m", layout.Options{
		Styling: layout.Bool(true),
		Width:   layout.Int(10),
		Filler:  layout.String(""),
	})
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "\x1b[0;31m012345678-\x1b[0m", lines[0])
	assert.Equal(t, "\x1b[0;31m9abc\x1b[0m", lines[1])
	assert.Equal(t, "012345678-", ansi.Strip(lines[0]))
}

func TestLines_StyledPadding(t *testing.T) {
	t.Parallel()

	lines, err := layout.Lines("ab", layout.Options{
		Styling:      layout.Bool(true),
		Width:        layout.Int(6),
		PaddingLeft:  layout.String("|"),
		PaddingRight: layout.String("|"),
		Filler:       layout.String("."),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"\x1b[0m|\x1b[0mab\x1b[0m..|\x1b[0m"}, lines)
	assert.Equal(t, 6, layout.Width(lines[0]))
}

func TestLines_LineWidths(t *testing.T) {
	t.Parallel()

	input := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do " +
		"eiusmod tempor incididunt ut labore et dolore magna aliqua. " +
		"Pneumonoultramicroscopicsilicovolcanoconiosis is a word."
	for _, width := range []int{8, 13, 21, 34} {
		lines, err := layout.Lines(input, layout.Options{
			Width:  layout.Int(width),
			Filler: layout.String(" "),
		})
		require.NoError(t, err)
		for i, line := range lines {
			assert.Equal(t, width, layout.Width(line), "width %d line %d: %q", width, i, line)
		}
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	got, err := layout.Wrap("123 56 890 2345", unstyled(10))
	require.NoError(t, err)
	assert.Equal(t, "123 56 \n890 2345", got)

	got, err = layout.Wrap("0123 5678", unstyled(8))
	require.NoError(t, err)
	assert.Equal(t, "0123 \n5678", got)
}

func TestLines_ConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  layout.Options
		field string
	}{
		{name: "zero width", opts: layout.Options{Width: layout.Int(0)}, field: "width"},
		{name: "padding fills line", opts: layout.Options{Width: layout.Int(4), PaddingLeft: layout.String(">>"), PaddingRight: layout.String("<<")}, field: "width"},
		{name: "no room beside hard break", opts: layout.Options{Width: layout.Int(3), HangingIndent: layout.String("  ")}, field: "width"},
		{name: "width only fits the hard break", opts: layout.Options{Width: layout.Int(1)}, field: "width"},
		{name: "negative justify limit", opts: layout.Options{JustifyLimit: layout.Int(-1)}, field: "justify_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := layout.Lines("some text", tt.opts)
			require.Error(t, err)
			require.ErrorIs(t, err, layout.ErrConfiguration)

			var cfgErr *layout.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLines_NeverWiderThanWidth(t *testing.T) {
	t.Parallel()

	for _, width := range []int{2, 3, 4, 5} {
		lines, err := layout.Lines("古古古 a古b 古古古古古", unstyled(width))
		require.NoError(t, err)
		for _, line := range lines {
			assert.LessOrEqual(t, layout.Width(line), width, "width %d: %q", width, line)
		}
	}
}

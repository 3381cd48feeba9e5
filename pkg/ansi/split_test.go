package ansi_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/ansifold/pkg/ansi"
)

func TestSplit_NestedBoldItalic(t *testing.T) {
	t.Parallel()

	// none, bold, bold+italic, italic, none
	input := "01" +
		"\x1b[1m23\x1b[22m" +
		"\x1b[1m\x1b[3m45\x1b[23m\x1b[22m" +
		"\x1b[3m67\x1b[23m" +
		"89"

	sep := ansi.Split(input)

	assert.Equal(t, "0123456789", sep.Plain)
	assert.Equal(t, []ansi.Event{
		{Position: 2, Styles: []int{1}},
		{Position: 4, Styles: []int{1, 3}},
		{Position: 6, Styles: []int{22, 3}},
		{Position: 8, Styles: []int{23}},
	}, sep.Events)
}

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantPlain string
		want      []ansi.Event
	}{
		{
			name:      "no directives",
			input:     "plain text",
			wantPlain: "plain text",
		},
		{
			name:      "directive at start",
			input:     "\x1b[31mred",
			wantPlain: "red",
			want:      []ansi.Event{{Position: 0, Styles: []int{31}}},
		},
		{
			name:      "CSI introducer",
			input:     "a\u009b[1mb",
			wantPlain: "ab",
			want:      []ansi.Event{{Position: 1, Styles: []int{1}}},
		},
		{
			name:      "multi parameter directive",
			input:     "x\x1b[1;4;31my",
			wantPlain: "xy",
			want:      []ansi.Event{{Position: 1, Styles: []int{1, 4, 31}}},
		},
		{
			name:      "positions count runes",
			input:     "日本\x1b[1m語",
			wantPlain: "日本語",
			want:      []ansi.Event{{Position: 2, Styles: []int{1}}},
		},
		{
			name:      "extended colour operands ignored",
			input:     "\x1b[38;5;196;1mX",
			wantPlain: "X",
			want:      []ansi.Event{{Position: 0, Styles: []int{1}}},
		},
		{
			name:      "trailing reset recorded at end",
			input:     "\x1b[1mab\x1b[0m",
			wantPlain: "ab",
			want: []ansi.Event{
				{Position: 0, Styles: []int{1}},
				{Position: 2, Styles: []int{0}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sep := ansi.Split(tt.input)
			assert.Equal(t, tt.wantPlain, sep.Plain)
			assert.Equal(t, tt.want, sep.Events)
		})
	}
}

func TestSplit_RoundTripKeepsVisibleText(t *testing.T) {
	t.Parallel()

	input := "\x1b[1mbold\x1b[22m and \x1b[4;32munder green\x1b[0m done"
	sep := ansi.Split(input)
	require.Equal(t, ansi.Strip(input), sep.Plain)

	// Re-apply every event and strip again: visible characters are unchanged.
	var sb strings.Builder
	runes := []rune(sep.Plain)
	next := 0
	for i, r := range runes {
		for next < len(sep.Events) && sep.Events[next].Position == i {
			sb.WriteString(ansi.Encode(ansi.Normalize(sep.Events[next].Styles)))
			next++
		}
		sb.WriteRune(r)
	}
	assert.Equal(t, sep.Plain, ansi.Strip(sb.String()))

	for i := 1; i < len(sep.Events); i++ {
		assert.Greater(t, sep.Events[i].Position, sep.Events[i-1].Position)
	}
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{1, 31}, ansi.ParseParams("1;31"))
	assert.Equal(t, []int{4}, ansi.ParseParams("4;"))
	assert.Equal(t, []int{1}, ansi.ParseParams("48;2;10;20;30;1"))
	assert.Empty(t, ansi.ParseParams("38"))
}

func TestStrip(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bold", ansi.Strip("\x1b[1mbold\x1b[0m"))
	assert.Equal(t, "unchanged", ansi.Strip("unchanged"))
}

func TestHasDirective(t *testing.T) {
	t.Parallel()

	assert.True(t, ansi.HasDirective("a\x1b[1mb"))
	assert.True(t, ansi.HasDirective("\u009b[0;31m"))
	assert.False(t, ansi.HasDirective("plain"))
	assert.False(t, ansi.HasDirective("\x1b[2J"))
	assert.False(t, ansi.HasDirective("\x1b[m"))
	assert.False(t, ansi.HasDirective("a\u009b1mb"))
}

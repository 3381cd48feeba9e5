package layout

import "strings"

// ColumnLines lays out cols side by side and returns the rows of the grid.
// Each column is laid out on its own; shorter columns are padded with blank
// lines so every row has the same width.
func ColumnLines(cols []Column, opts ColumnOptions) ([]string, error) {
	shared := DefaultColumnConfig().Merge(opts)
	middle := ""
	if shared.PaddingMiddle != nil {
		middle = *shared.PaddingMiddle
	}
	total := 0
	if shared.Width != nil {
		total = *shared.Width
	}

	configs, err := columnConfigs(cols, shared.Options, total, Width(middle))
	if err != nil {
		return nil, err
	}

	out := make([][]string, len(cols))
	rows := 0
	for i, col := range cols {
		lines, err := configs[i].Lines(col.Content)
		if err != nil {
			return nil, err
		}
		out[i] = lines
		rows = max(rows, len(lines))
	}

	for i := range out {
		if len(out[i]) == rows {
			continue
		}
		blank, err := blankLine(configs[i])
		if err != nil {
			return nil, err
		}
		for len(out[i]) < rows {
			out[i] = append(out[i], blank)
		}
	}

	result := make([]string, rows)
	cells := make([]string, len(out))
	for r := range result {
		for i := range out {
			cells[i] = out[i][r]
		}
		result[r] = strings.Join(cells, middle)
	}
	return result, nil
}

// WrapColumns is ColumnLines joined by newlines. One column of the total
// width is given up to the newline.
func WrapColumns(cols []Column, opts ColumnOptions) (string, error) {
	shared := DefaultColumnConfig().Merge(opts)
	if shared.Width != nil {
		shared.Width = Int(*shared.Width - 1)
	}
	rows, err := ColumnLines(cols, shared)
	if err != nil {
		return "", err
	}
	return strings.Join(rows, "\n"), nil
}

// columnConfigs resolves the configuration of every column and hands out the
// width the columns did not claim.
func columnConfigs(cols []Column, shared Options, total, middleWidth int) ([]Config, error) {
	// A column filler defaults to a space so columns stay aligned.
	base := Options{Filler: String(" ")}.Apply(DefaultConfig())
	shared.Width = nil
	base = shared.Apply(base)

	configs := make([]Config, len(cols))
	var unsized []int
	unclaimed := total - middleWidth*max(len(cols)-1, 0)
	for i, col := range cols {
		configs[i] = col.Options.Apply(base)
		if col.Options.Width != nil {
			unclaimed -= *col.Options.Width
			continue
		}
		unsized = append(unsized, i)
	}

	if n := len(unsized); n > 0 {
		share, rest := unclaimed/n, unclaimed%n
		for j, i := range unsized {
			configs[i].Width = share
			if j < rest {
				configs[i].Width++
			}
		}
	}

	for i, c := range configs {
		if c.Width <= 0 {
			return nil, &ConfigError{
				Field:  "columns",
				Value:  i,
				Reason: "no width left for column",
			}
		}
	}

	log().Debug().
		Int("columns", len(cols)).
		Int("unclaimed", unclaimed).
		Ints("unsized", unsized).
		Msg("column widths resolved")
	return configs, nil
}

// blankLine lays out a zero-width marker through c and removes it, leaving
// a line with the column's padding, filler and styling.
func blankLine(c Config) (string, error) {
	lines, err := c.Lines(string(ZeroWidthSpace))
	if err != nil {
		return "", err
	}
	return strings.Replace(lines[0], string(ZeroWidthSpace), "", 1), nil
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dkoosis/ansifold/internal/config"
	"github.com/dkoosis/ansifold/internal/version"
	"github.com/dkoosis/ansifold/pkg/ansi"
	"github.com/dkoosis/ansifold/pkg/layout"
)

// usageArgs turns argument validation failures into usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

func newColumnsCmd(a *app) *cobra.Command {
	var widths []int
	cmd := &cobra.Command{
		Use:   "columns FILE...",
		Short: "Lay files out side by side, one column per file",
		Long: `columns lays every file out as its own column and joins them row by row.
--width is the width of the whole grid. Columns without a width from
--column-width share what is left equally.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(widths) > len(args) {
				return usageErrorf("--column-width: %d widths for %d columns", len(widths), len(args))
			}
			texts, err := a.readInputs(args)
			if err != nil {
				return err
			}
			cols := make([]layout.Column, len(texts))
			for i, t := range texts {
				cols[i].Content = t
				if i < len(widths) && widths[i] > 0 {
					cols[i].Options.Width = layout.Int(widths[i])
				}
			}
			rows, err := layout.ColumnLines(cols, layout.ColumnOptions{Options: a.callOptions(texts...)})
			if err != nil {
				return err
			}
			return a.writeLines(rows)
		},
	}
	cmd.Flags().IntSliceVar(&widths, "column-width", nil, "width of each column in order, 0 for an equal share")
	cmd.Flags().String("padding-middle", layout.DefaultPaddingMiddle, "text placed between columns")
	return cmd
}

func newJustifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "justify [text...]",
		Short: "Stretch each input line to the configured width",
		Long: `justify widens the spaces of every line so it spans --width exactly.
Lines are taken from the arguments, joined by spaces, or from stdin.`,
		RunE: func(_ *cobra.Command, args []string) error {
			var text string
			if len(args) > 0 {
				text = strings.Join(args, " ")
			} else {
				texts, err := a.readInputs(nil)
				if err != nil {
					return err
				}
				text = texts[0]
			}
			width := a.cfg.Layout.Width
			for _, line := range strings.Split(text, "\n") {
				if _, err := fmt.Fprintln(a.stdout, layout.Justify(line, width)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newWordsCmd(a *app) *cobra.Command {
	var keepStyles bool
	cmd := &cobra.Command{
		Use:   "words [files...]",
		Short: "Show how input is segmented into words",
		RunE: func(_ *cobra.Command, args []string) error {
			texts, err := a.readInputs(args)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(a.stdout)
			for _, word := range layout.Words(strings.Join(texts, "\n"), keepStyles) {
				fmt.Fprintln(w, strconv.Quote(word))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&keepStyles, "keep-styles", false, "keep style directives inside words")
	return cmd
}

func newSplitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "split [files...]",
		Short: "Separate style directives from text and list the style changes",
		RunE: func(_ *cobra.Command, args []string) error {
			texts, err := a.readInputs(args)
			if err != nil {
				return err
			}
			sep := ansi.Split(strings.Join(texts, "\n"))
			w := bufio.NewWriter(a.stdout)
			fmt.Fprintln(w, strconv.Quote(sep.Plain))
			for _, ev := range sep.Events {
				fmt.Fprintf(w, "%6d  %s\n", ev.Position, describeCodes(ev.Styles))
			}
			return w.Flush()
		},
	}
}

// describeCodes names each code, falling back to the number for codes
// outside the registry.
func describeCodes(codes []int) string {
	if len(codes) == 0 {
		return "reset"
	}
	names := make([]string, len(codes))
	for i, c := range codes {
		id, ok := ansi.Lookup(c)
		switch {
		case c == ansi.Reset:
			names[i] = "reset"
		case ok:
			names[i] = id.FullName
		default:
			names[i] = strconv.Itoa(c)
		}
	}
	return strings.Join(names, " ")
}

// renderer returns a lipgloss renderer for w that emits basic ANSI colours
// when styling is on and nothing otherwise.
func (a *app) renderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if a.cfg.Layout.Styling {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func newCodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the style codes ansifold understands",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			header := a.renderer(a.stdout).NewStyle().Bold(true)
			w := bufio.NewWriter(a.stdout)
			for _, g := range ansi.Registry() {
				fmt.Fprintln(w, header.Render(g.Name))
				for _, c := range g.Codes {
					fmt.Fprintf(w, "  %3d  %s", c.Code, g.Name+"."+c.Name)
					if a.cfg.Layout.Styling && c.Name != ansi.DefaultName {
						fmt.Fprintf(w, "  %ssample%s", ansi.Encode([]int{c.Code}), ansi.ResetDirective)
					}
					fmt.Fprintln(w)
				}
			}
			return w.Flush()
		},
	}
}

type paintFlags struct {
	bold, italic, underline, strikethrough, faint bool
	fg, bg                                        string
}

func newPaintCmd(a *app) *cobra.Command {
	var f paintFlags
	cmd := &cobra.Command{
		Use:   "paint [text...]",
		Short: "Style text, handy for producing input to try layouts on",
		RunE: func(_ *cobra.Command, args []string) error {
			style := a.renderer(a.stdout).NewStyle().
				Bold(f.bold).
				Italic(f.italic).
				Underline(f.underline).
				Strikethrough(f.strikethrough).
				Faint(f.faint)
			if f.fg != "" {
				c, err := paintColor(f.fg, "foreground")
				if err != nil {
					return err
				}
				style = style.Foreground(c)
			}
			if f.bg != "" {
				c, err := paintColor(f.bg, "background")
				if err != nil {
					return err
				}
				style = style.Background(c)
			}

			var text string
			if len(args) > 0 {
				text = strings.Join(args, " ")
			} else {
				texts, err := a.readInputs(nil)
				if err != nil {
					return err
				}
				text = texts[0]
			}
			_, err := fmt.Fprintln(a.stdout, style.Render(text))
			return err
		},
	}
	fs := cmd.Flags()
	fs.BoolVar(&f.bold, "bold", false, "bold")
	fs.BoolVar(&f.italic, "italic", false, "italic")
	fs.BoolVar(&f.underline, "underline", false, "single underline")
	fs.BoolVar(&f.strikethrough, "strikethrough", false, "strike through")
	fs.BoolVar(&f.faint, "faint", false, "faint")
	fs.StringVar(&f.fg, "fg", "", "foreground colour: a name such as red or intense-blue, or a 256-colour index")
	fs.StringVar(&f.bg, "bg", "", "background colour, as --fg")
	return cmd
}

// paintColor resolves a colour name from group, or a numeric index.
func paintColor(name, group string) (lipgloss.Color, error) {
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return "", usageErrorf("colour %d out of range 0-255", n)
		}
		return lipgloss.Color(name), nil
	}
	code, ok := ansi.CodeFor(group + "." + name)
	if !ok || name == ansi.DefaultName {
		return "", usageErrorf("unknown colour %q", name)
	}
	base := code % 10
	if code >= 90 {
		base += 8
	}
	return lipgloss.Color(strconv.Itoa(base)), nil
}

func newConfigCmd(a *app) *cobra.Command {
	var (
		format  string
		sources bool
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `config prints the configuration after every source has been applied, in a
form that can be saved as a config file. --sources lists each key with the
source that set it instead.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			if sources {
				return printSources(a.stdout, a.cfg)
			}
			switch format {
			case "yaml", "toml":
			default:
				return usageErrorf("--format %q: want yaml or toml", format)
			}
			return a.cfg.Encode(a.stdout, format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or toml")
	cmd.Flags().BoolVar(&sources, "sources", false, "show where each value came from")
	return cmd
}

func printSources(out io.Writer, cfg *config.Config) error {
	w := bufio.NewWriter(out)
	values := cfg.Map()
	for _, key := range cfg.Keys() {
		fmt.Fprintf(w, "%-26s %-12q %s\n", key, fmt.Sprint(lookup(values, key)), cfg.Source(key))
	}
	return w.Flush()
}

// lookup finds a dotted key in nested maps.
func lookup(m map[string]any, key string) any {
	head, rest, nested := strings.Cut(key, ".")
	v := m[head]
	if !nested {
		return v
	}
	sub, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	return lookup(sub, rest)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(a.stdout, version.String())
			return err
		},
	}
}

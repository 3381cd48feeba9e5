package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/unicode/norm"

	"github.com/dkoosis/ansifold/internal/config"
	"github.com/dkoosis/ansifold/internal/detect"
	"github.com/dkoosis/ansifold/internal/logging"
	"github.com/dkoosis/ansifold/internal/version"
	"github.com/dkoosis/ansifold/pkg/layout"
)

// app is the state shared by every command of one run.
type app struct {
	stdin          io.Reader
	stdout, stderr io.Writer

	verbosity  int
	configPath string
	color      string
	nfc        bool

	cfg *config.Config
}

// Color modes.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// flagKeys maps layout flags to their configuration keys.
var flagKeys = map[string]string{
	"width":          "layout.width",
	"indent":         "layout.first_line_indent",
	"hanging-indent": "layout.hanging_indent",
	"padding-left":   "layout.padding_left",
	"padding-right":  "layout.padding_right",
	"filler":         "layout.filler",
	"hard-break":     "layout.hard_break",
	"trim-start":     "layout.trim_start",
	"trim-end":       "layout.trim_end",
	"justify":        "layout.justify",
	"justify-limit":  "layout.justify_limit",
	"padding-middle": "columns.padding_middle",
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ansifold [files...]",
		Short: "Wrap and lay out ANSI-styled text for the terminal",
		Long: `ansifold wraps text to a fixed width while keeping ANSI styling correct on
every line. Input comes from the named files, or stdin when none are given
or a file is "-".`,
		Version: version.Resolved(),
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWrap(cmd, args)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.CountVarP(&a.verbosity, "verbose", "v", "increase log output (repeatable)")
	pf.StringVar(&a.configPath, "config", "", "config file (default .ansifold.yaml or $XDG_CONFIG_HOME/ansifold/config.yaml)")
	pf.StringVar(&a.color, "color", colorAuto, "styling: auto, always or never")
	pf.BoolVar(&a.nfc, "nfc", false, "normalize input to NFC before layout")
	addLayoutFlags(pf)

	root.AddCommand(
		newColumnsCmd(a),
		newJustifyCmd(a),
		newWordsCmd(a),
		newSplitCmd(a),
		newCodesCmd(a),
		newPaintCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

// addLayoutFlags declares the layout flags. Defaults shown in help are the
// built-in ones; unset flags leave the configured value alone.
func addLayoutFlags(fs *pflag.FlagSet) {
	def := layout.DefaultConfig()
	fs.IntP("width", "w", def.Width, "total line width in columns")
	fs.String("indent", "", "first line indent")
	fs.String("hanging-indent", "", "indent of every line after the first")
	fs.String("padding-left", "", "text placed before every line")
	fs.String("padding-right", "", "text placed after every line")
	fs.String("filler", "", "pads short lines to the full width")
	fs.String("hard-break", def.HardBreak, "marks where an overlong word was split")
	fs.String("trim-start", def.TrimStart.String(), "trim leading spaces: true, false or a count")
	fs.String("trim-end", def.TrimEnd.String(), "trim trailing spaces: true, false or a count")
	fs.Bool("justify", false, "justify every line but the last of a paragraph")
	fs.Int("justify-limit", def.JustifyLimit, "widest gap justification may produce, 0 for no limit")
}

// setup configures logging and loads the configuration.
func (a *app) setup(cmd *cobra.Command) error {
	logging.Setup(a.verbosity, a.stderr, detect.SupportsStyling(a.stderr))
	layout.SetLogger(logging.For("layout"))
	log.Debug().Str("command", cmd.Name()).Msg("command started")

	flags, err := a.flagOverrides(cmd)
	if err != nil {
		return err
	}

	// Every run starts from the built-in defaults.
	layout.ResetDefaults()
	cfg, err := config.Load(config.LoadOptions{
		Path:     a.configPath,
		Terminal: detect.For(a.stdout),
		Flags:    flags,
	})
	if err != nil {
		return err
	}
	cfg.Install()
	a.cfg = cfg

	log.Debug().
		Str("config", cfg.Path).
		Int("width", cfg.Layout.Width).
		Bool("styling", cfg.Layout.Styling).
		Msg("configuration loaded")
	return nil
}

// flagOverrides collects the flags set on the command line as config keys.
func (a *app) flagOverrides(cmd *cobra.Command) (map[string]any, error) {
	flags := map[string]any{}
	var bad error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if strings.HasPrefix(f.Name, "trim-") {
			if _, err := layout.ParseTrimMode(f.Value.String()); err != nil && bad == nil {
				bad = &usageError{err: fmt.Errorf("--%s: %w", f.Name, err)}
			}
		}
		flags[key] = f.Value.String()
	})
	if bad != nil {
		return nil, bad
	}
	if w, ok := flags["layout.width"]; ok && cmd.Name() == "columns" {
		flags["columns.width"] = w
	}

	switch a.color {
	case colorAuto:
	case colorAlways:
		flags["layout.styling"] = true
	case colorNever:
		flags["layout.styling"] = false
	default:
		return nil, usageErrorf("--color %q: want auto, always or never", a.color)
	}
	return flags, nil
}

// readInputs reads every named file, "-" meaning stdin, or stdin alone when
// no names are given.
func (a *app) readInputs(names []string) ([]string, error) {
	if len(names) == 0 {
		names = []string{"-"}
	}
	texts := make([]string, 0, len(names))
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == "-" {
			data, err = io.ReadAll(a.stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		log.Debug().Str("input", name).Stringer("format", detect.Sniff(data)).Int("bytes", len(data)).Msg("input read")
		texts = append(texts, a.prepare(string(data)))
	}
	return texts, nil
}

// prepare normalizes line endings and tabs, optionally composes to NFC,
// and drops the final newline so it does not become a blank line.
func (a *app) prepare(text string) string {
	text = layout.Transform(text, nil)
	if a.nfc {
		text = norm.NFC.String(text)
	}
	return strings.TrimSuffix(text, "\n")
}

// callOptions are per-call layout overrides. With --color auto, plain input
// is laid out without styling so no bare resets are emitted.
func (a *app) callOptions(texts ...string) layout.Options {
	if a.color != colorAuto {
		return layout.Options{}
	}
	for _, t := range texts {
		if detect.Sniff([]byte(t)) == detect.Styled {
			return layout.Options{}
		}
	}
	return layout.Options{Styling: layout.Bool(false)}
}

func (a *app) runWrap(_ *cobra.Command, args []string) error {
	texts, err := a.readInputs(args)
	if err != nil {
		return err
	}
	text := strings.Join(texts, "\n")
	lines, err := layout.Lines(text, a.callOptions(text))
	if err != nil {
		return err
	}
	return a.writeLines(lines)
}

func (a *app) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(a.stdout, line); err != nil {
			return err
		}
	}
	return nil
}

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/dkoosis/ansifold/internal/logging"
	"github.com/dkoosis/ansifold/pkg/layout"
)

const (
	// AppName names the user config directory.
	AppName = "ansifold"
	// EnvPrefix starts every environment variable read by Load.
	EnvPrefix = "ANSIFOLD_"
)

// Sources, lowest priority first.
const (
	SourceDefault  = "default"
	SourceTerminal = "terminal"
	SourceFile     = "file"
	SourceEnv      = "env"
	SourceNoColor  = "NO_COLOR"
	SourceFlags    = "flags"
)

// localNames are looked up in the working directory, in order.
var localNames = []string{".ansifold.yaml", ".ansifold.yml", ".ansifold.toml"}

// userNames are looked up in the user config directory, in order.
var userNames = []string{"config.yaml", "config.yml", "config.toml"}

// Layout mirrors layout.Config.
type Layout struct {
	Styling         bool            `koanf:"styling"`
	Width           int             `koanf:"width"`
	FirstLineIndent string          `koanf:"first_line_indent"`
	HangingIndent   string          `koanf:"hanging_indent"`
	PaddingLeft     string          `koanf:"padding_left"`
	PaddingRight    string          `koanf:"padding_right"`
	Filler          string          `koanf:"filler"`
	HardBreak       string          `koanf:"hard_break"`
	TrimStart       layout.TrimMode `koanf:"trim_start"`
	TrimEnd         layout.TrimMode `koanf:"trim_end"`
	Justify         bool            `koanf:"justify"`
	JustifyLimit    int             `koanf:"justify_limit"`
}

// Columns holds the column layout settings.
type Columns struct {
	Width         int    `koanf:"width"`
	PaddingMiddle string `koanf:"padding_middle"`
}

// Config is the effective configuration.
type Config struct {
	Layout  Layout  `koanf:"layout"`
	Columns Columns `koanf:"columns"`

	// Path is the config file that was read, empty if none was.
	Path string `koanf:"-"`

	sources map[string]string
}

// Terminal describes the output the configuration is for.
type Terminal interface {
	Width() int
	SupportsStyling() bool
}

// LoadOptions controls Load.
type LoadOptions struct {
	// Path is an explicit config file. It must exist. Empty searches the
	// default locations.
	Path string
	// Terminal supplies width and styling below the config file. Nil skips
	// detection.
	Terminal Terminal
	// Flags are the command-line overrides, keyed like the config file
	// ("layout.width", "columns.padding_middle").
	Flags map[string]any
}

// Load builds the effective configuration from every source.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.For("config")
	k := koanf.New(".")
	sources := map[string]string{}

	apply := func(source string, p koanf.Provider, parser koanf.Parser) error {
		layer := koanf.New(".")
		if err := layer.Load(p, parser); err != nil {
			return fmt.Errorf("load %s config: %w", source, err)
		}
		for _, key := range layer.Keys() {
			sources[key] = source
		}
		if err := k.Merge(layer); err != nil {
			return fmt.Errorf("merge %s config: %w", source, err)
		}
		logger.Debug().Str("source", source).Strs("keys", layer.Keys()).Msg("config layer applied")
		return nil
	}

	if err := apply(SourceDefault, confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, err
	}

	if opts.Terminal != nil {
		width := opts.Terminal.Width()
		detected := map[string]any{
			"layout.width":   width,
			"columns.width":  width,
			"layout.styling": opts.Terminal.SupportsStyling(),
		}
		if err := apply(SourceTerminal, confmap.Provider(detected, "."), nil); err != nil {
			return nil, err
		}
	}

	path, err := findFile(opts.Path)
	if err != nil {
		return nil, err
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := apply(SourceFile, file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := apply(SourceEnv, env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	if os.Getenv("NO_COLOR") != "" {
		off := map[string]any{"layout.styling": false}
		if err := apply(SourceNoColor, confmap.Provider(off, "."), nil); err != nil {
			return nil, err
		}
	}

	if len(opts.Flags) > 0 {
		if err := apply(SourceFlags, confmap.Provider(opts.Flags, "."), nil); err != nil {
			return nil, err
		}
	}

	cfg := &Config{Path: path, sources: sources}
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(trimModeHookFunc()),
		},
	}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// defaults returns the current process-wide layout defaults as config keys.
func defaults() map[string]any {
	c := layout.DefaultConfig()
	cols := layout.DefaultColumnConfig()
	m := map[string]any{
		"layout.styling":           c.Styling,
		"layout.width":             c.Width,
		"layout.first_line_indent": c.FirstLineIndent,
		"layout.hanging_indent":    c.HangingIndent,
		"layout.padding_left":      c.PaddingLeft,
		"layout.padding_right":     c.PaddingRight,
		"layout.filler":            c.Filler,
		"layout.hard_break":        c.HardBreak,
		"layout.trim_start":        c.TrimStart.Value(),
		"layout.trim_end":          c.TrimEnd.Value(),
		"layout.justify":           c.Justify,
		"layout.justify_limit":     c.JustifyLimit,
		"columns.width":            layout.DefaultWidth,
		"columns.padding_middle":   layout.DefaultPaddingMiddle,
	}
	if cols.Width != nil {
		m["columns.width"] = *cols.Width
	}
	if cols.PaddingMiddle != nil {
		m["columns.padding_middle"] = *cols.PaddingMiddle
	}
	return m
}

// findFile returns the config file to read, or "" when there is none.
func findFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, name := range localNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	dir := filepath.Join(xdg.ConfigHome, AppName)
	for _, name := range userNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("config file %s: unsupported format, want .yaml, .yml or .toml", path)
	}
}

// envKey maps ANSIFOLD_COLUMNS_PADDING_MIDDLE to columns.padding_middle and
// ANSIFOLD_HARD_BREAK to layout.hard_break.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "columns_"); ok {
		return "columns." + rest
	}
	return "layout." + key
}

var trimModeType = reflect.TypeOf(layout.TrimMode{})

// trimModeHookFunc decodes a trim mode from true, false, a count or any of
// those as a string.
func trimModeHookFunc() mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != trimModeType {
			return data, nil
		}
		switch v := data.(type) {
		case bool:
			if v {
				return layout.TrimAll, nil
			}
			return layout.TrimNone, nil
		case int:
			return trimCount(int64(v))
		case int64:
			return trimCount(v)
		case float64:
			return trimCount(int64(v))
		case string:
			return layout.ParseTrimMode(v)
		}
		return data, nil
	}
}

func trimCount(n int64) (layout.TrimMode, error) {
	if n < 0 {
		return layout.TrimNone, fmt.Errorf("trim mode %d: count must not be negative", n)
	}
	return layout.TrimCount(int(n)), nil
}

// Validate checks the layout and column settings.
func (c *Config) Validate() error {
	if err := c.Options().Apply(layout.Config{}).Validate(); err != nil {
		return fmt.Errorf("layout config: %w", err)
	}
	if c.Columns.Width <= 0 {
		return fmt.Errorf("columns config: %w", &layout.ConfigError{
			Field:  "columns.width",
			Value:  c.Columns.Width,
			Reason: "must be positive",
		})
	}
	return nil
}

// Options returns the layout settings as a complete override set.
func (c *Config) Options() layout.Options {
	l := c.Layout
	return layout.Config{
		Styling:         l.Styling,
		Width:           l.Width,
		FirstLineIndent: l.FirstLineIndent,
		HangingIndent:   l.HangingIndent,
		PaddingLeft:     l.PaddingLeft,
		PaddingRight:    l.PaddingRight,
		Filler:          l.Filler,
		HardBreak:       l.HardBreak,
		TrimStart:       l.TrimStart,
		TrimEnd:         l.TrimEnd,
		Justify:         l.Justify,
		JustifyLimit:    l.JustifyLimit,
	}.Options()
}

// ColumnOptions returns the column settings.
func (c *Config) ColumnOptions() layout.ColumnOptions {
	return layout.ColumnOptions{
		Options:       layout.Options{Width: layout.Int(c.Columns.Width)},
		PaddingMiddle: layout.String(c.Columns.PaddingMiddle),
	}
}

// Install makes c the process-wide layout default.
func (c *Config) Install() {
	layout.SetDefaultConfig(c.Options())
	layout.SetDefaultColumnConfig(c.ColumnOptions())
}

// Source reports which source set key, e.g. "layout.width".
func (c *Config) Source(key string) string {
	if s, ok := c.sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Keys lists every configuration key in order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(c.sources))
	for k := range c.sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns the configuration as nested maps, trim modes as bool or int.
func (c *Config) Map() map[string]any {
	l := c.Layout
	return map[string]any{
		"layout": map[string]any{
			"styling":           l.Styling,
			"width":             l.Width,
			"first_line_indent": l.FirstLineIndent,
			"hanging_indent":    l.HangingIndent,
			"padding_left":      l.PaddingLeft,
			"padding_right":     l.PaddingRight,
			"filler":            l.Filler,
			"hard_break":        l.HardBreak,
			"trim_start":        l.TrimStart.Value(),
			"trim_end":          l.TrimEnd.Value(),
			"justify":           l.Justify,
			"justify_limit":     l.JustifyLimit,
		},
		"columns": map[string]any{
			"width":          c.Columns.Width,
			"padding_middle": c.Columns.PaddingMiddle,
		},
	}
}

// Encode writes the configuration to w as "yaml" or "toml", in a form Load
// reads back.
func (c *Config) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		enc := yamlv3.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c.Map()); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "toml":
		if err := gotoml.NewEncoder(w).Encode(c.Map()); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q, want yaml or toml", format)
	}
}

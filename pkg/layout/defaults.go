package layout

import (
	"sync"

	"github.com/rs/zerolog"
)

// Built-in defaults.
const (
	DefaultWidth         = 80
	DefaultHardBreak     = "-"
	DefaultJustifyLimit  = 3
	DefaultPaddingMiddle = "   "
)

// Process-wide defaults are meant to be set once at startup. The lock only
// keeps a late SetDefault* from racing readers.
var (
	defaultsMu sync.RWMutex
	defaults   = builtinConfig()
	columnDefs = builtinColumnOptions()
	logger     = zerolog.Nop()
)

func builtinConfig() Config {
	return Config{
		Styling:      true,
		Width:        DefaultWidth,
		HardBreak:    DefaultHardBreak,
		TrimEnd:      TrimAll,
		JustifyLimit: DefaultJustifyLimit,
	}
}

func builtinColumnOptions() ColumnOptions {
	return ColumnOptions{
		Options:       Options{Width: Int(DefaultWidth)},
		PaddingMiddle: String(DefaultPaddingMiddle),
	}
}

// DefaultConfig returns the current process-wide configuration.
func DefaultConfig() Config {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// SetDefaultConfig merges o into the process-wide configuration.
func SetDefaultConfig(o Options) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = o.Apply(defaults)
}

// DefaultColumnConfig returns the current process-wide column options.
func DefaultColumnConfig() ColumnOptions {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return ColumnOptions{}.Merge(columnDefs)
}

// SetDefaultColumnConfig merges o into the process-wide column options.
func SetDefaultColumnConfig(o ColumnOptions) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	columnDefs = columnDefs.Merge(o)
}

// ResetDefaults restores the built-in layout and column defaults.
func ResetDefaults() {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = builtinConfig()
	columnDefs = builtinColumnOptions()
}

// SetLogger sets the logger layout reports hard breaks and skipped
// justification to. The default discards everything.
func SetLogger(l zerolog.Logger) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	logger = l
}

func log() *zerolog.Logger {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	l := logger
	return &l
}

package layout

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every configuration error.
var ErrConfiguration = errors.New("invalid layout configuration")

// ConfigError describes a configuration value layout cannot work with.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %v: %s", ErrConfiguration, e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

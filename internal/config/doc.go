// Package config loads ansifold's layout configuration.
//
// # Configuration Precedence
//
// Values are layered, each source overriding the ones before it:
//
//  1. Built-in layout defaults
//  2. Terminal detection (width and styling of the output)
//  3. Config file (--config, else .ansifold.yaml, .ansifold.yml or
//     .ansifold.toml in the working directory, else config.yaml or
//     config.toml under $XDG_CONFIG_HOME/ansifold)
//  4. ANSIFOLD_* environment variables
//  5. NO_COLOR, which turns styling off
//  6. CLI flags
//
// # Keys
//
// Layout keys live under "layout" and column keys under "columns":
//
//	layout:
//	  styling: true
//	  width: 80
//	  first_line_indent: ""
//	  hanging_indent: ""
//	  padding_left: ""
//	  padding_right: ""
//	  filler: ""
//	  hard_break: "-"
//	  trim_start: false   # true, false or a count
//	  trim_end: true
//	  justify: false
//	  justify_limit: 3
//	columns:
//	  width: 80
//	  padding_middle: "   "
//
// # Environment Variables
//
// ANSIFOLD_COLUMNS_<KEY> sets columns.<key>; any other ANSIFOLD_<KEY> sets
// layout.<key>, e.g. ANSIFOLD_HANGING_INDENT or ANSIFOLD_COLUMNS_PADDING_MIDDLE.
package config

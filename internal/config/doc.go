// Package config handles configuration loading and merging for spanfmt.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to
// lowest priority):
//
//  1. CLI flags (-culture, -mono, -debug)
//  2. Environment variables (SPANFMT_CULTURE, SPANFMT_NO_COLOR, NO_COLOR)
//  3. YAML config file (.spanfmt.yaml in the local directory or
//     ~/.config/spanfmt/.spanfmt.yaml)
//  4. Hardcoded defaults (invariant culture, colored output)
//
// When a higher-priority source sets a value, it overrides any
// lower-priority values.
//
// # Key Configuration Options
//
//   - Culture: default culture, as a BCP-47 tag ("fi-FI") or a path to a
//     culture table YAML file
//   - CultureFiles: extra culture table files registered at startup so their
//     names resolve like built-in cultures
//   - NoColor: disables all ANSI styling in diagnostics
//
// # Environment Variables
//
//   - SPANFMT_CULTURE: default culture tag or file path
//   - SPANFMT_NO_COLOR or NO_COLOR: set to "true" or "1" to disable colors
//   - SPANFMT_DEBUG: set to any non-empty value to enable debug output
package config

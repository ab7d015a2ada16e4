// Package config loads sift's settings.
//
// # Configuration Precedence
//
// Values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--format, --top, --root, --fail-on, ...)
//  2. Environment variables (SIFT_FORMAT, SIFT_TOP, SIFT_FAIL_ON, ...)
//  3. YAML config file (.sift.yaml in the working directory, then the user
//     config directory under sift/), or the file named by --config
//  4. Hardcoded defaults
//
// # Keys
//
//   - format: auto, json, yaml, markdown, text, terminal, llm, sarif
//   - output: report path; empty writes to stdout
//   - top: number of files listed (0 means the default)
//   - root: project prefix trimmed from diagnostic paths
//   - theme: default, orca, mono
//   - history: SQLite run history path; "default" uses the user config directory
//   - fail-on: exit 1 when a diagnostic at or above this severity exists
//   - inputs: capture files analyzed when none are given on the command line
//
// NO_COLOR, when set, forces the mono theme.
package config

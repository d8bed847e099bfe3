// Package file stores settings as TOML in ~/.hioder/config.toml.
// Dotted keys map onto nested tables.
package file

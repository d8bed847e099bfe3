// Package driving lists what the CLI, the terminal UI, the web pages and
// the MCP server may ask of the core. internal/core/services implements
// every interface.
package driving

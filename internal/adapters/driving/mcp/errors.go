// Package mcp provides an MCP (Model Context Protocol) server adapter for hioder.
// It lets AI assistants search and read the browsable datasets.
package mcp

import "errors"

// ErrMissingBrowseService is returned when the browse service is not provided.
var ErrMissingBrowseService = errors.New("mcp: browse service is required")

// Package memory provides in-memory implementations of driven ports.
// Nothing is persisted; stores are safe for concurrent use.
package memory

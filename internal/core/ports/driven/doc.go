// Package driven holds the interfaces services use to reach the outside
// world: where dataset documents come from, where per-session selections
// are kept and where settings are persisted.
//
// DatasetLoader, SessionStore and ConfigStore are always wired.
// PredicateCompiler and DatasetWatcher may be nil; without a compiler
// where filters fail with ErrPredicateUnavailable, and without a watcher a
// dataset is only reloaded when its cache entry is invalidated by hand.
package driven

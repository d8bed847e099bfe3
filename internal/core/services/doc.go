// Package services implements the driving port interfaces.
// Services contain the core browsing logic and orchestrate
// calls to driven ports (adapters).
//
// BrowseService owns the per-dataset cache; the detail, VOC and issue
// services read records through it. Concurrent first loads of a dataset
// share one fetch.
package services

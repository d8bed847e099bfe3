// Package loader fetches dataset documents over HTTP or from local files.
//
// JSON is decoded with numbers preserved as json.Number. Documents whose
// path ends in .yaml or .yml are decoded as YAML. Fetches share a rate
// limiter and are never retried.
package loader

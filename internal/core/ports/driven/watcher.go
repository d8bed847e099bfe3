package driven

import "context"

// DatasetWatcher reports changes to local dataset files.
type DatasetWatcher interface {
	// Watch calls onChange with the path of each changed file until ctx
	// is cancelled. Paths that are not local files are ignored.
	Watch(ctx context.Context, paths []string, onChange func(path string)) error
}

package port

import "context"

// ObjectStorage abstracts the object store holding the source result sheets.
type ObjectStorage interface {
	// List returns the storage keys of all supported documents under the
	// configured prefix, in lexicographic order so reruns are reproducible.
	List(ctx context.Context) ([]string, error)

	// Download fetches one object into the local cache, preserving the
	// relative path under the prefix, and returns the local file path.
	Download(ctx context.Context, key string) (string, error)
}

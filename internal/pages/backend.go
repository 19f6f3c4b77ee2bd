package pages

import "context"

// Backend is the key-value document collection the store persists into. Every
// write stamps the last-updated field in the same logical update, so a page
// document is never visible with a field changed but its timestamp stale.
type Backend interface {
	// Exists reports whether the named document is present.
	Exists(ctx context.Context, name string) (bool, error)

	// Get returns the document's field mapping, or ok=false when absent.
	Get(ctx context.Context, name string) (map[string]any, bool, error)

	// Apply merges fields into the named document, creating it if absent,
	// stamping the last-updated field atomically with the change.
	Apply(ctx context.Context, name string, fields map[string]any) error

	// ReadModifyWrite runs mutate against the current value of one field
	// inside a transaction and writes the returned value back with the
	// timestamp stamp. Returns the document-absent error of the backend when
	// name does not exist; fieldExists is false when the field is missing.
	ReadModifyWrite(ctx context.Context, name, field string, mutate func(current any, fieldExists bool) (any, error)) error

	// Close releases the backend's resources.
	Close() error
}

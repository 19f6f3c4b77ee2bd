// Package drive reads source documents out of the shared document repository
// and mirrors idempotency tags back into them.
package drive

import "context"

// File identifies one document in the repository.
type File struct {
	ID   string
	Name string
}

// Repository is the remote document repository the pipeline reads from.
type Repository interface {
	// ListFiles returns name -> id for every live document in the folder.
	ListFiles(ctx context.Context, folderID string) (map[string]string, error)

	// GetFileByName resolves one document by exact name within a folder.
	// A missing document fails with ErrNotFound.
	GetFileByName(ctx context.Context, folderID, name string) (File, error)

	// ExportFile downloads the document converted to the given MIME type.
	ExportFile(ctx context.Context, fileID, mimeType string) ([]byte, error)

	// DeleteFile removes the document from the repository.
	DeleteFile(ctx context.Context, fileID string) error

	// MirrorTag writes the idempotency marker line into the top of the
	// remote document so later exports carry it.
	MirrorTag(ctx context.Context, fileID, tag string) error
}

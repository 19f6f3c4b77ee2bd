package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	docs "google.golang.org/api/docs/v1"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/tagger"
)

// GoogleRepository talks to Google Drive for file access and Google Docs for
// in-place tag mirroring.
type GoogleRepository struct {
	files  *driveapi.Service
	docs   *docs.Service
	logger *slog.Logger
}

// NewGoogleRepository builds both API clients from one credential source.
// credentialsFile may be empty, in which case ambient credentials apply.
func NewGoogleRepository(ctx context.Context, credentialsFile string, logger *slog.Logger) (*GoogleRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	filesSvc, err := driveapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("drive service: %w", err)
	}
	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("docs service: %w", err)
	}
	return &GoogleRepository{files: filesSvc, docs: docsSvc, logger: logger}, nil
}

// escapeQuery escapes a literal value for a Drive search query string.
func escapeQuery(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}

func (r *GoogleRepository) ListFiles(ctx context.Context, folderID string) (map[string]string, error) {
	query := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(folderID))
	out := make(map[string]string)
	pageToken := ""
	for {
		call := r.files.Files.List().Q(query).Fields("nextPageToken", "files(id, name)").Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		page, err := call.Do()
		if err != nil {
			return nil, common.Collaborator("document repository", err)
		}
		for _, f := range page.Files {
			out[f.Name] = f.Id
		}
		if page.NextPageToken == "" {
			return out, nil
		}
		pageToken = page.NextPageToken
	}
}

func (r *GoogleRepository) GetFileByName(ctx context.Context, folderID, name string) (File, error) {
	query := fmt.Sprintf(
		"'%s' in parents and name = '%s' and trashed = false and mimeType = '%s'",
		escapeQuery(folderID), escapeQuery(name), constants.GoogleDocMIME,
	)
	page, err := r.files.Files.List().Q(query).Fields("files(id, name)").Context(ctx).Do()
	if err != nil {
		return File{}, common.Collaborator("document repository", err)
	}
	if len(page.Files) == 0 {
		return File{}, fmt.Errorf("file %q in folder %s: %w", name, folderID, common.ErrNotFound)
	}
	if len(page.Files) > 1 {
		r.logger.Warn("drive.get_file.duplicate_name", "name", name, "folder", folderID, "count", len(page.Files))
	}
	f := page.Files[0]
	return File{ID: f.Id, Name: f.Name}, nil
}

func (r *GoogleRepository) ExportFile(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	resp, err := r.files.Files.Export(fileID, mimeType).Context(ctx).Download()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil, fmt.Errorf("file %s: %w", fileID, common.ErrNotFound)
		}
		return nil, common.Collaborator("document repository", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.Collaborator("document repository", err)
	}
	r.logger.Debug("drive.export.ok", "file_id", fileID, "mime", mimeType, "bytes", len(data))
	return data, nil
}

func (r *GoogleRepository) DeleteFile(ctx context.Context, fileID string) error {
	if err := r.files.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return fmt.Errorf("file %s: %w", fileID, common.ErrNotFound)
		}
		return common.Collaborator("document repository", err)
	}
	r.logger.Info("drive.delete.ok", "file_id", fileID)
	return nil
}

// MirrorTag inserts the marker line at the very top of the remote document.
// Index 1 is the first writable position in a Docs body.
func (r *GoogleRepository) MirrorTag(ctx context.Context, fileID, tag string) error {
	req := &docs.BatchUpdateDocumentRequest{
		Requests: []*docs.Request{{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: 1},
				Text:     tagger.MarkerLine(tag) + "\n",
			},
		}},
	}
	if _, err := r.docs.Documents.BatchUpdate(fileID, req).Context(ctx).Do(); err != nil {
		return common.Collaborator("document repository", err)
	}
	r.logger.Info("drive.mirror_tag.ok", "file_id", fileID)
	return nil
}

package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
)

// GCSUploader implements Uploader against a Google Cloud Storage bucket whose
// objects are publicly readable.
type GCSUploader struct {
	client *storage.Client
	bucket string
	logger *slog.Logger
}

func NewGCSUploader(client *storage.Client, bucket string, logger *slog.Logger) *GCSUploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &GCSUploader{client: client, bucket: bucket, logger: logger}
}

// Upload writes the object and returns its public URL.
func (u *GCSUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	w := u.client.Bucket(u.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", key, err)
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, key)
	u.logger.Debug("media.gcs.uploaded", "bucket", u.bucket, "key", key)
	return url, nil
}

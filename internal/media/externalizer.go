// Package media rewrites inline base64 images in exported documents into
// public object-storage URLs so extracted records reference stable assets.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/common"
)

// inlineImageRe matches markdown reference-style inline images of the form
// `[label]: <data:image/<fmt>;base64,<payload>>`, one per line.
var inlineImageRe = regexp.MustCompile(`\[.*?\]:\s*<(data:image/[a-zA-Z]+;base64,([^>]+))>`)

// Uploader stores decoded image bytes and returns the object's public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Reference pairs an externalized payload with its public URL, in encounter
// order. Produced fresh per run, never persisted.
type Reference struct {
	OriginalPayload string `json:"original_base64"`
	PublicURL       string `json:"public_url"`
}

// Externalizer scans artifact text and uploads every inline image it finds.
type Externalizer struct {
	uploader Uploader
	logger   *slog.Logger
}

func NewExternalizer(uploader Uploader, logger *slog.Logger) *Externalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Externalizer{uploader: uploader, logger: logger}
}

// Externalize replaces each inline image with its uploaded public URL and
// returns the rewritten text plus one Reference per image. Lines without a
// match pass through unchanged; only the matched fragment in a matching line
// is rewritten. Re-running on already-externalized text is a no-op.
func (e *Externalizer) Externalize(ctx context.Context, text string) (string, []Reference, error) {
	if text == "" {
		return "", nil, nil
	}

	lines := strings.Split(text, "\n")
	var refs []Reference

	for i, line := range lines {
		m := inlineImageRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		dataURI, payload := m[1], m[2]

		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", refs, fmt.Errorf("decode inline image on line %d: %w", i+1, err)
		}

		key := constants.ImageKeyPrefix + hexID() + ".png"
		publicURL, err := e.uploader.Upload(ctx, key, decoded, constants.ImageContentType)
		if err != nil {
			return "", refs, common.Collaborator("object storage", err)
		}

		lines[i] = strings.Replace(line, "<"+dataURI+">", publicURL, 1)
		refs = append(refs, Reference{OriginalPayload: payload, PublicURL: publicURL})
		e.logger.Info("media.externalize.uploaded", "key", key, "bytes", len(decoded))
	}

	return strings.Join(lines, "\n"), refs, nil
}

func hexID() string {
	u := uuid.New()
	return strings.ReplaceAll(u.String(), "-", "")
}

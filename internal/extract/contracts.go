package extract

import "context"

// Part is one element of a model request: either text or a media reference.
type Part struct {
	Text     string
	MediaURI string
	MimeType string
}

// TextPart wraps prompt text.
func TextPart(text string) Part {
	return Part{Text: text}
}

// MediaPart references an image already in object storage.
func MediaPart(uri, mimeType string) Part {
	return Part{MediaURI: uri, MimeType: mimeType}
}

// ModelClient is the generative model the extractor depends on. Generate is
// synchronous; a service failure is fatal to that extraction attempt.
type ModelClient interface {
	Generate(ctx context.Context, parts ...Part) (string, error)
}

// Package extract turns rendered prompts into validated content records via
// a generative model. Parse failures are never retried automatically: a
// second model call is not guaranteed to converge and costs real latency.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/content"
)

// Extractor runs the generate → strip → parse → validate pipeline.
type Extractor struct {
	model  ModelClient
	logger *slog.Logger
}

func NewExtractor(model ModelClient, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{model: model, logger: logger}
}

// ExtractProject derives a Project record from a rendered prompt.
func (e *Extractor) ExtractProject(ctx context.Context, renderedPrompt string) (content.Project, []byte, error) {
	var out content.Project
	raw, err := e.extract(ctx, BuildProjectSchema(), &out, TextPart(renderedPrompt))
	return out, raw, err
}

// ExtractProjectFromImage derives a Project record from an image alone.
func (e *Extractor) ExtractProjectFromImage(ctx context.Context, mediaURI, question string) (content.Project, []byte, error) {
	var out content.Project
	raw, err := e.extract(ctx, BuildProjectSchema(), &out,
		MediaPart(mediaURI, "image/png"), TextPart(question))
	return out, raw, err
}

// ExtractProjectFromTextAndImage derives a Project record from an image plus
// a rendered prompt.
func (e *Extractor) ExtractProjectFromTextAndImage(ctx context.Context, mediaURI, question, renderedPrompt string) (content.Project, []byte, error) {
	var out content.Project
	raw, err := e.extract(ctx, BuildProjectSchema(), &out,
		MediaPart(mediaURI, "image/png"), TextPart(question), TextPart(renderedPrompt))
	return out, raw, err
}

// ExtractCodelab derives a Codelab record from a rendered prompt.
func (e *Extractor) ExtractCodelab(ctx context.Context, renderedPrompt string) (content.Codelab, []byte, error) {
	var out content.Codelab
	raw, err := e.extract(ctx, BuildCodelabSchema(), &out, TextPart(renderedPrompt))
	return out, raw, err
}

// extract submits the parts, strips the fenced envelope, parses the JSON,
// checks schema conformance, and unmarshals into target. The raw (stripped)
// response is returned for logging/audit even on validation failure.
func (e *Extractor) extract(ctx context.Context, schema map[string]any, target any, parts ...Part) ([]byte, error) {
	rid := uuid.NewString()
	start := time.Now()

	response, err := e.model.Generate(ctx, parts...)
	if err != nil {
		e.logger.Error("extract.generate.failed", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, common.Collaborator("model", err)
	}

	raw := []byte(StripFence(response))

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		e.logger.Error("extract.parse.failed", "req_id", rid, "error", err,
			"response_bytes", len(raw))
		return raw, fmt.Errorf("%w: %w", common.ErrMalformedExtraction, err)
	}

	if err := validateAgainstSchema(schema, raw); err != nil {
		e.logger.Error("extract.schema.failed", "req_id", rid, "error", err)
		return raw, fmt.Errorf("%w: %w", common.ErrIncompleteExtraction, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return raw, fmt.Errorf("%w: %w", common.ErrMalformedExtraction, err)
	}

	e.logger.Info("extract.ok", "req_id", rid,
		"elapsed_ms", time.Since(start).Milliseconds(), "response_bytes", len(raw))
	return raw, nil
}

// StripFence removes the fenced-code-block envelope the model commonly wraps
// structured output in.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

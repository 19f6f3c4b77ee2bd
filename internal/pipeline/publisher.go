// Package pipeline runs the publish flow for one source document:
// fetch → tag → externalize images → extract → append to its page document.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdg-fisk/content-pipeline/constants"
	"github.com/gdg-fisk/content-pipeline/internal/artifact"
	"github.com/gdg-fisk/content-pipeline/internal/common"
	"github.com/gdg-fisk/content-pipeline/internal/drive"
	"github.com/gdg-fisk/content-pipeline/internal/extract"
	"github.com/gdg-fisk/content-pipeline/internal/media"
	"github.com/gdg-fisk/content-pipeline/internal/pages"
	"github.com/gdg-fisk/content-pipeline/internal/prompt"
	"github.com/gdg-fisk/content-pipeline/internal/tagger"
)

// Kind selects which extraction flow a document goes through.
type Kind string

const (
	KindProject Kind = "projects"
	KindCodelab Kind = "codelabs"
)

// Target binds a content kind to its source folder and destination page field.
type Target struct {
	FolderID string
	Doc      string
	Field    string
}

// Targets builds the kind routing table from the configured folder IDs.
// Kinds without a configured folder are left out.
func Targets(cfg common.DriveConfig) map[Kind]Target {
	targets := make(map[Kind]Target, 2)
	if cfg.ProjectsFolderID != "" {
		targets[KindProject] = Target{
			FolderID: cfg.ProjectsFolderID,
			Doc:      constants.ProjectsPageDoc,
			Field:    constants.ProjectsField,
		}
	}
	if cfg.CodelabsFolderID != "" {
		targets[KindCodelab] = Target{
			FolderID: cfg.CodelabsFolderID,
			Doc:      constants.CodelabsPageDoc,
			Field:    constants.CodelabsField,
		}
	}
	return targets
}

// Request names one source document to publish.
type Request struct {
	Kind     Kind
	FileName string
}

// Result reports what a completed run produced.
type Result struct {
	Tag       string
	FileID    string
	Doc       string
	Field     string
	ImageRefs []media.Reference
}

// Publisher orchestrates one run per Request. Each external call runs under
// its own bounded context; the run's scratch store is always released.
type Publisher struct {
	repo         drive.Repository
	tags         *tagger.Tagger
	media        *media.Externalizer
	extractor    *extract.Extractor
	store        *pages.Store
	targets      map[Kind]Target
	stageTimeout time.Duration
	logger       *slog.Logger
}

func NewPublisher(
	repo drive.Repository,
	tags *tagger.Tagger,
	externalizer *media.Externalizer,
	extractor *extract.Extractor,
	store *pages.Store,
	targets map[Kind]Target,
	stageTimeout time.Duration,
	logger *slog.Logger,
) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	if stageTimeout <= 0 {
		stageTimeout = 30 * time.Second
	}
	return &Publisher{
		repo:         repo,
		tags:         tags,
		media:        externalizer,
		extractor:    extractor,
		store:        store,
		targets:      targets,
		stageTimeout: stageTimeout,
		logger:       logger,
	}
}

// Publish runs the full flow for one document. Stages run strictly in order;
// the first failure aborts the run and nothing is written to the page
// document.
func (p *Publisher) Publish(ctx context.Context, req Request) (Result, error) {
	target, ok := p.targets[req.Kind]
	if !ok {
		return Result{}, fmt.Errorf("content kind %q: %w", req.Kind, common.ErrNotFound)
	}

	scratch, err := artifact.NewStore(p.logger)
	if err != nil {
		return Result{}, err
	}
	defer scratch.ReleaseAll()

	// Fetch: resolve the file and export it as markdown.
	file, err := runStage(ctx, p.stageTimeout, func(sctx context.Context) (drive.File, error) {
		return p.repo.GetFileByName(sctx, target.FolderID, req.FileName)
	})
	if err != nil {
		return Result{}, fmt.Errorf("resolve %q: %w", req.FileName, err)
	}
	exported, err := runStage(ctx, p.stageTimeout, func(sctx context.Context) ([]byte, error) {
		return p.repo.ExportFile(sctx, file.ID, constants.ExportMarkdown)
	})
	if err != nil {
		return Result{}, fmt.Errorf("export %q: %w", req.FileName, err)
	}

	path, err := scratch.PersistBytes(exported, "document.md")
	if err != nil {
		return Result{}, err
	}

	// Tag: guarantee the idempotency marker and mirror a fresh one upstream.
	tag, assigned, err := p.tags.EnsureTag(path)
	if err != nil {
		return Result{}, fmt.Errorf("tag %q: %w", req.FileName, err)
	}
	if assigned {
		if err := p.stage(ctx, func(sctx context.Context) error {
			return p.repo.MirrorTag(sctx, file.ID, tag)
		}); err != nil {
			return Result{}, fmt.Errorf("mirror tag %q: %w", req.FileName, err)
		}
	}

	tagged, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read artifact: %w", err)
	}

	// Externalize: replace inline images with public object URLs.
	text := string(tagged)
	var refs []media.Reference
	err = p.stage(ctx, func(sctx context.Context) error {
		var serr error
		text, refs, serr = p.media.Externalize(sctx, text)
		return serr
	})
	if err != nil {
		return Result{}, fmt.Errorf("externalize %q: %w", req.FileName, err)
	}

	// Extract: render the kind's prompt and derive a validated record.
	record, err := p.extractRecord(ctx, req.Kind, text)
	if err != nil {
		return Result{}, fmt.Errorf("extract %q: %w", req.FileName, err)
	}

	// Store: append the record to its page document's list field.
	err = p.stage(ctx, func(sctx context.Context) error {
		return p.store.AppendToListField(sctx, target.Doc, target.Field, record)
	})
	if err != nil {
		return Result{}, fmt.Errorf("store %q: %w", req.FileName, err)
	}

	p.logger.Info("pipeline.publish.ok",
		"kind", req.Kind, "file", req.FileName, "tag", tag,
		"doc", target.Doc, "images", len(refs))
	return Result{
		Tag:       tag,
		FileID:    file.ID,
		Doc:       target.Doc,
		Field:     target.Field,
		ImageRefs: refs,
	}, nil
}

func (p *Publisher) extractRecord(ctx context.Context, kind Kind, document string) (any, error) {
	switch kind {
	case KindProject:
		rendered, err := prompt.Render(prompt.ProjectTemplate, prompt.ProjectValues(document))
		if err != nil {
			return nil, err
		}
		var record any
		err = p.stage(ctx, func(sctx context.Context) error {
			var serr error
			record, _, serr = p.extractor.ExtractProject(sctx, rendered)
			return serr
		})
		return record, err
	case KindCodelab:
		rendered, err := prompt.Render(prompt.CodelabTemplate, prompt.CodelabValues(document))
		if err != nil {
			return nil, err
		}
		var record any
		err = p.stage(ctx, func(sctx context.Context) error {
			var serr error
			record, _, serr = p.extractor.ExtractCodelab(sctx, rendered)
			return serr
		})
		return record, err
	default:
		return nil, fmt.Errorf("content kind %q: %w", kind, common.ErrNotFound)
	}
}

// stage runs one external call under the per-stage deadline.
func (p *Publisher) stage(ctx context.Context, fn func(context.Context) error) error {
	sctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()
	return fn(sctx)
}

// runStage is stage for calls that also return a value.
func runStage[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(sctx)
}

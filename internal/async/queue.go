// Package async decouples webhook triggers from publish runs with a bounded
// worker queue.
package async

import (
	"context"
	"time"

	"github.com/gdg-fisk/content-pipeline/internal/pipeline"
)

// Job is one queued publish request.
type Job struct {
	Request     pipeline.Request
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}

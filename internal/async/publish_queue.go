package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/gdg-fisk/content-pipeline/internal/pipeline"
)

// Publisher runs one publish flow per request.
type Publisher interface {
	Publish(ctx context.Context, req pipeline.Request) (pipeline.Result, error)
}

// PublishQueue fans queued jobs out to a fixed pool of workers, each running
// the full publish flow under its own run deadline.
type PublishQueue struct {
	pub     Publisher
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*PublishQueue)

func WithWorkers(n int) Option {
	return func(q *PublishQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *PublishQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithRunTimeout(d time.Duration) Option {
	return func(q *PublishQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewPublishQueue(pub Publisher, logger *slog.Logger, opts ...Option) *PublishQueue {
	if logger == nil {
		logger = slog.Default()
	}
	q := &PublishQueue{
		pub:     pub,
		logger:  logger,
		workers: 2,
		timeout: 3 * time.Minute,
		ch:      make(chan Job, 64),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *PublishQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("worker started", "worker_id", workerID)

				for job := range q.ch {
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					res, err := q.pub.Publish(ctx, job.Request)
					cancel()

					if err != nil {
						q.logger.Error("publish failed", "worker_id", workerID,
							"kind", job.Request.Kind, "file", job.Request.FileName,
							"trace_id", job.TraceID, "error", err)
					} else {
						q.logger.Info("published document", "worker_id", workerID,
							"kind", job.Request.Kind, "file", job.Request.FileName,
							"trace_id", job.TraceID, "tag", res.Tag, "doc", res.Doc)
					}
				}

				q.logger.Info("worker stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *PublishQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("cannot enqueue: queue is shutting down", "file", job.Request.FileName)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("queued document for publishing",
			"kind", job.Request.Kind, "file", job.Request.FileName, "trace_id", job.TraceID)
	default:
		q.logger.Warn("queue full, applying backpressure", "file", job.Request.FileName)
		q.ch <- job
	}
	return nil
}

func (q *PublishQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("shutdown interrupted by context")
	case <-done:
		q.logger.Info("queue drained, shutdown complete")
	}
}

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultAttempts = 3
	defaultBackoff  = 2 * time.Second
)

// Job is a unit of background work, typically an outbound email.
type Job struct {
	ID          string
	Description string
	Run         func(ctx context.Context) error
}

// NewJob wraps fn with a fresh job ID.
func NewJob(description string, fn func(ctx context.Context) error) Job {
	return Job{ID: uuid.NewString(), Description: description, Run: fn}
}

// Pool executes jobs on a fixed set of workers behind a bounded queue.
// Enqueue never blocks the caller: when the queue is full the job is
// dropped and logged. Failed jobs are retried with backoff.
type Pool struct {
	jobs     chan Job
	logger   *zap.Logger
	workers  int
	attempts int
	backoff  time.Duration

	wg       sync.WaitGroup
	stopOnce sync.Once

	mu      sync.Mutex
	stopped bool
}

// NewPool builds a pool with the given queue capacity and worker count.
func NewPool(capacity, workers int, logger *zap.Logger) *Pool {
	if capacity <= 0 {
		capacity = 64
	}
	if workers <= 0 {
		workers = 2
	}
	return &Pool{
		jobs:     make(chan Job, capacity),
		logger:   logger,
		workers:  workers,
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
}

// Start launches the workers. The context bounds every job execution.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.process(ctx, job)
			}
		}()
	}
}

// Enqueue hands a job to the pool. Returns false when the queue is full
// or the pool has been stopped.
func (p *Pool) Enqueue(job Job) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		p.logger.Warn("pool stopped, dropping job",
			zap.String("job_id", job.ID),
			zap.String("description", job.Description))
		return false
	}

	select {
	case p.jobs <- job:
		return true
	default:
		p.logger.Warn("job queue full, dropping job",
			zap.String("job_id", job.ID),
			zap.String("description", job.Description))
		return false
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.mu.Lock()
		p.stopped = true
		close(p.jobs)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

func (p *Pool) process(ctx context.Context, job Job) {
	var err error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if err = job.Run(ctx); err == nil {
			p.logger.Debug("job completed",
				zap.String("job_id", job.ID),
				zap.String("description", job.Description),
				zap.Int("attempt", attempt))
			return
		}

		p.logger.Warn("job attempt failed",
			zap.String("job_id", job.ID),
			zap.String("description", job.Description),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < p.attempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(p.backoff * time.Duration(attempt)):
			}
		}
	}

	p.logger.Error("job dropped after retries",
		zap.String("job_id", job.ID),
		zap.String("description", job.Description),
		zap.Error(err))
}

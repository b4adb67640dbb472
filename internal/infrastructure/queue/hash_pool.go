package queue

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/users-service/internal/api/metrics"
	"github.com/99minutos/users-service/internal/core/ports"
)

const channelBuffer = 256

// ErrPoolStopped is returned when a job is submitted after the pool's context
// has been cancelled.
var ErrPoolStopped = errors.New("hash pool stopped")

type job struct {
	ctx  context.Context
	run  func(ctx context.Context)
	done chan struct{}
}

// HashPool runs password hashing and verification on a fixed set of workers so
// that CPU-bound bcrypt work cannot starve request handling. It implements
// ports.PasswordHasher by delegating to inner.
type HashPool struct {
	inner   ports.PasswordHasher
	jobs    chan job
	workers int
	stopped chan struct{}
	log     zerolog.Logger
}

// NewHashPool creates a pool with numWorkers workers.
// If numWorkers <= 0, GOMAXPROCS is used.
func NewHashPool(numWorkers int, inner ports.PasswordHasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &HashPool{
		inner:   inner,
		jobs:    make(chan job, channelBuffer),
		workers: numWorkers,
		stopped: make(chan struct{}),
		log:     log,
	}
}

// Start launches the workers. They stop when ctx is cancelled; pending and
// future submissions then fail with ErrPoolStopped.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.stopped)
	}()
	p.log.Info().Int("workers", p.workers).Msg("hash pool started")
}

func (p *HashPool) Hash(ctx context.Context, password string) (string, error) {
	var (
		hash string
		err  error
	)
	if subErr := p.submit(ctx, "hash", func(ctx context.Context) {
		hash, err = p.inner.Hash(ctx, password)
	}); subErr != nil {
		return "", subErr
	}
	return hash, err
}

func (p *HashPool) Verify(ctx context.Context, password, hash string) (bool, error) {
	var (
		ok  bool
		err error
	)
	if subErr := p.submit(ctx, "verify", func(ctx context.Context) {
		ok, err = p.inner.Verify(ctx, password, hash)
	}); subErr != nil {
		return false, subErr
	}
	return ok, err
}

// submit enqueues fn and waits for it. If ctx ends first the job is abandoned;
// a worker that later dequeues it skips it.
func (p *HashPool) submit(ctx context.Context, op string, fn func(ctx context.Context)) error {
	select {
	case <-p.stopped:
		return ErrPoolStopped
	default:
	}

	j := job{ctx: ctx, done: make(chan struct{})}
	j.run = func(ctx context.Context) {
		start := time.Now()
		fn(ctx)
		metrics.PasswordHashDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}

	select {
	case p.jobs <- j:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrPoolStopped
	}

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrPoolStopped
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			if j.ctx.Err() != nil {
				p.log.Debug().Int("worker_id", id).Msg("skipping abandoned hash job")
				close(j.done)
				continue
			}
			j.run(j.ctx)
			close(j.done)
		}
	}
}

package pool

import (
	"github.com/panjf2000/ants/v2"
	"github.com/wealrain/ignitekv/pkg/errors"
	"go.uber.org/zap"
)

// WorkStealingThreadPool wraps an external work-stealing goroutine pool.
// There is no pack repository that imports a work-stealing scheduler; see
// DESIGN.md for the explicit no-grounding note this dependency required.
type WorkStealingThreadPool struct {
	pool *ants.Pool
	log  *zap.SugaredLogger
}

// NewWorkStealing builds a work-stealing pool sized to threads.
func NewWorkStealing(threads int, log *zap.SugaredLogger) (*WorkStealingThreadPool, error) {
	if threads <= 0 {
		threads = ants.DefaultAntsPoolSize
	}

	p, err := ants.NewPool(threads, ants.WithPanicHandler(func(r any) {
		log.Errorw("worker panicked while running a job", "panic", r)
	}))
	if err != nil {
		return nil, errors.NewEngineError(err, errors.ErrorCodeInternal, "failed to build work-stealing pool")
	}

	return &WorkStealingThreadPool{pool: p, log: log}, nil
}

// Submit hands job to the underlying pool, which blocks while every worker
// is busy. If the pool refuses the job (for example after Close), the job
// is dropped and the failure is logged.
func (p *WorkStealingThreadPool) Submit(job Job) {
	if err := p.pool.Submit(job); err != nil {
		p.log.Errorw("failed to submit job to work-stealing pool", "error", err)
	}
}

// Close releases the underlying pool's workers.
func (p *WorkStealingThreadPool) Close() error {
	p.pool.Release()
	return nil
}

package pool

import (
	"sync"

	"go.uber.org/zap"
)

// SharedQueueThreadPool runs a fixed number of long-lived worker goroutines
// pulling from one shared, unbuffered job channel, so Submit waits until a
// worker is free to receive the job. If a worker panics while
// running a job, the panic is recovered and a replacement worker is
// spawned immediately so the pool size never shrinks. Submit after Close
// is a no-op: the channel is closed and workers drain it before exiting.
type SharedQueueThreadPool struct {
	jobs   chan Job
	log    *zap.SugaredLogger
	wg     sync.WaitGroup
	mu     sync.RWMutex // guards closed and serializes Submit against Close's channel close.
	closed bool
	once   sync.Once
}

// NewSharedQueue starts threads long-lived workers pulling from one shared
// channel.
func NewSharedQueue(threads int, log *zap.SugaredLogger) (*SharedQueueThreadPool, error) {
	if threads <= 0 {
		threads = 1
	}

	p := &SharedQueueThreadPool{
		jobs: make(chan Job),
		log:  log,
	}

	for i := 0; i < threads; i++ {
		p.spawnWorker()
	}

	return p, nil
}

// spawnWorker starts one worker goroutine. On a panic inside a job, it
// recovers, logs the panic, and spawns a replacement worker before this
// one exits — mirroring the task-receiver respawn-on-drop-while-panicking
// behavior of the pool this design is based on.
func (p *SharedQueueThreadPool) spawnWorker() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				p.log.Errorw("worker panicked while running a job, respawning", "panic", r)
				p.spawnWorker()
			}
		}()

		for job := range p.jobs {
			job()
		}
	}()
}

// Submit hands job to the next available worker, blocking until one
// receives it. It is a no-op after
// Close. Holding the read lock for the duration of the send keeps Close
// from closing the jobs channel underneath an in-flight send, which would
// otherwise panic.
func (p *SharedQueueThreadPool) Submit(job Job) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return
	}
	p.jobs <- job
}

// Close stops accepting jobs and closes the shared channel so every
// worker drains its remaining jobs and exits.
func (p *SharedQueueThreadPool) Close() error {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
	return nil
}

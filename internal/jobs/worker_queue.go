package jobs

import (
	"sync/atomic"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/worker"
)

// WorkerQueue implements FlushQueue using a worker pool. At most one flush
// job is pending or running at a time. A request made while a job is
// outstanding marks the queue for a rerun, and the job schedules one more
// flush when it finishes, since the running job may already have written an
// older document.
type WorkerQueue struct {
	pool     *worker.Pool
	store    worker.Flusher
	attempts int
	backoff  time.Duration
	pending  atomic.Bool
	rerun    atomic.Bool
}

var _ FlushQueue = (*WorkerQueue)(nil)

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, store worker.Flusher, attempts int, backoff time.Duration) *WorkerQueue {
	return &WorkerQueue{
		pool:     pool,
		store:    store,
		attempts: attempts,
		backoff:  backoff,
	}
}

func (q *WorkerQueue) EnqueueFlush() error {
	for {
		if q.pending.CompareAndSwap(false, true) {
			q.rerun.Store(false)
			return q.submit()
		}
		q.rerun.Store(true)
		if q.pending.Load() {
			return nil
		}
		// The outstanding job finished between the two checks; claim the slot.
	}
}

func (q *WorkerQueue) submit() error {
	err := q.pool.Submit(&worker.FlushJob{
		Store:    q.store,
		Attempts: q.attempts,
		Backoff:  q.backoff,
		Done:     q.finished,
	})
	if err != nil {
		q.pending.Store(false)
	}
	return err
}

func (q *WorkerQueue) finished() {
	if q.rerun.Swap(false) {
		if err := q.submit(); err != nil {
			logger.Default().WithPrefix("flush_queue").Warn("could not schedule flush rerun: %v", err)
		}
		return
	}
	q.pending.Store(false)
	if q.rerun.Swap(false) {
		if err := q.EnqueueFlush(); err != nil {
			logger.Default().WithPrefix("flush_queue").Warn("could not schedule flush rerun: %v", err)
		}
	}
}

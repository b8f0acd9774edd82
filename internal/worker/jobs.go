package worker

import (
	"context"
	"time"

	"github.com/vytor/flashdeck/internal/logger"
)

// Flusher writes the in-memory document back to storage.
type Flusher interface {
	Flush(ctx context.Context) error
}

// FlushJob retries a failed document write, doubling the wait between
// attempts. It stops at the first success, after Attempts tries, or when
// the context is cancelled.
type FlushJob struct {
	Store    Flusher
	Attempts int
	Backoff  time.Duration
	Done     func()
}

func (j *FlushJob) Name() string { return "flush_document" }

func (j *FlushJob) Run(ctx context.Context) error {
	if j.Done != nil {
		defer j.Done()
	}
	log := logger.FromContext(ctx)

	attempts := j.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	wait := j.Backoff

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = j.Store.Flush(ctx); err == nil {
			log.Info("document flushed on attempt %d", attempt)
			return nil
		}
		log.Warn("flush attempt %d/%d failed: %v", attempt, attempts, err)
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
	return err
}

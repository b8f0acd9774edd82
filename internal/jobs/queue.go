package jobs

// FlushQueue schedules background retries of the document write
type FlushQueue interface {
	EnqueueFlush() error
}

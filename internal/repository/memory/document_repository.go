package memory

import (
	"context"
	"sync"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
)

type documentRepository struct {
	mu     sync.Mutex
	values map[string][]byte
	quota  int
}

// NewDocumentRepository creates an in-process repository. A positive quota
// caps the combined size of keys and values in bytes, the way browser local
// storage does; zero means unlimited.
func NewDocumentRepository(quota int) repository.DocumentRepository {
	return &documentRepository{values: map[string][]byte{}, quota: quota}
}

func (r *documentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("memory_repo")
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.values[key]
	if !ok {
		log.Debug("key not found: %s", key)
		return nil, repository.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (r *documentRepository) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("memory_repo")
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.quota > 0 {
		used := 0
		for k, v := range r.values {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used+len(key)+len(value) > r.quota {
			log.Warn("quota exceeded writing %s: used=%d, value=%d, quota=%d", key, used, len(value), r.quota)
			return repository.ErrQuotaExceeded
		}
	}

	r.values[key] = append([]byte(nil), value...)
	log.Debug("stored %s (%d bytes)", key, len(value))
	return nil
}

func (r *documentRepository) Close() error {
	return nil
}

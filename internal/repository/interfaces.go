package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when no value is stored under the key.
	ErrNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by Set when the value does not fit the medium.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// DocumentRepository is an opaque key-value medium holding serialized documents.
// Set always overwrites the whole value.
type DocumentRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

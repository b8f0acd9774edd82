package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
)

type documentRepository struct {
	dir string
}

// NewDocumentRepository stores each key as <dir>/<key>.json, creating dir if needed.
func NewDocumentRepository(dir string) (repository.DocumentRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &documentRepository{dir: dir}, nil
}

func (r *documentRepository) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *documentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("file_repo")
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug("no document at %s", p)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to read %s: %v", p, err)
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return b, nil
}

// Set writes to a temp file in the same directory and renames it over the
// target, so readers see either the previous or the new document.
func (r *documentRepository) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("file_repo")
	p, err := r.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.dir, "."+key+"-*.tmp")
	if err != nil {
		log.Error("failed to create temp file: %v", err)
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		cleanup()
		log.Error("failed to replace %s: %v", p, err)
		return fmt.Errorf("replace %s: %w", p, err)
	}

	log.Debug("wrote %s (%d bytes)", p, len(value))
	return nil
}

func (r *documentRepository) Close() error {
	return nil
}

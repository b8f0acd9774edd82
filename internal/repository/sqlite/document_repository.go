package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type documentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a DocumentRepository over the kv_store table.
func NewDocumentRepository(db *sql.DB) repository.DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Get(ctx context.Context, key string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("sqlite_repo")
	log.Debug("getting document: key=%s", key)

	query, args, err := sqlBuilder.Select("value").
		From("kv_store").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var value string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("document not found: key=%s", key)
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get document: %v", err)
		return nil, err
	}
	log.Debug("document found: key=%s, bytes=%d", key, len(value))
	return []byte(value), nil
}

func (r *documentRepository) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContext(ctx).WithPrefix("sqlite_repo")
	log.Debug("storing document: key=%s, bytes=%d", key, len(value))

	query, args, err := sqlBuilder.Insert("kv_store").
		Columns("key", "value", "updated_at", "revision").
		Values(key, string(value), squirrel.Expr("CURRENT_TIMESTAMP"), 1).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at, revision = kv_store.revision + 1").
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to store document: %v", err)
		return err
	}
	return nil
}

// Revision returns how many times key has been written, or 0 when absent.
func Revision(ctx context.Context, db *sql.DB, key string) (int, error) {
	query, args, err := sqlBuilder.Select("revision").
		From("kv_store").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return 0, err
	}
	var rev int
	err = db.QueryRowContext(ctx, query, args...).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return rev, err
}

// Close is a no-op; the *sql.DB is owned by whoever opened it.
func (r *documentRepository) Close() error {
	return nil
}

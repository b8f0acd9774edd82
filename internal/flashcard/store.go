// Package flashcard owns the in-memory folder/deck/card graph and keeps it
// mirrored to a DocumentRepository. Every mutation validates its arguments
// before touching the graph, applies the change, then writes the full
// document back under a single key.
//
// Deck counters (easy, good, hard, totalCards, cardsLeft) are maintained
// incrementally. cardsLeft is incremented when a card is added and is never
// decremented by a rating; it reproduces the counter the study app always
// displayed as "cards left today".
package flashcard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

// DefaultKey is the repository key the document lives under.
const DefaultKey = "flashcardData"

// Store is safe for concurrent use. Mutations hold the write lock through the
// flush so snapshots reach the repository in mutation order.
type Store struct {
	mu    sync.RWMutex
	repo  repository.DocumentRepository
	key   string
	data  models.Document
	newID func(prefix string) string
	now   func() time.Time

	onFlushError func(error)
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the repository key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithIDGenerator replaces the default "<prefix>-<uuid>" id scheme.
func WithIDGenerator(fn func(prefix string) string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// WithClock sets the time source used for default review timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithFlushFailureHandler registers fn to be called after a failed write.
// fn runs with the store locked and must not call back into the store.
func WithFlushFailureHandler(fn func(error)) Option {
	return func(s *Store) {
		s.onFlushError = fn
	}
}

// New creates an empty store backed by repo. Call Load or Seed before use.
func New(repo repository.DocumentRepository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		key:  DefaultKey,
		data: models.EmptyDocument(),
		newID: func(prefix string) string {
			return prefix + "-" + uuid.NewString()
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the repository key the store reads and writes.
func (s *Store) Key() string {
	return s.key
}

// Load hydrates the store from the repository. It returns a NOT_FOUND error
// when no document is stored (the caller decides what to seed), a
// STORAGE_ERROR when the read fails and a PARSE_ERROR when the document is
// malformed. The in-memory graph is untouched on failure.
func (s *Store) Load(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")
	log.Debug("loading document: key=%s", s.key)

	raw, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, repository.ErrNotFound) {
		log.Info("no stored document under %s", s.key)
		return apperrors.NewNotFoundError("document", s.key)
	}
	if err != nil {
		log.Error("failed to read document: %v", err)
		return apperrors.NewStorageError("read", err)
	}

	doc, err := Decode(raw)
	if err != nil {
		log.Error("failed to decode document: %v", err)
		return apperrors.NewParseError(s.key, err)
	}

	s.mu.Lock()
	s.data = doc
	s.mu.Unlock()

	log.Info("document loaded: folders=%d, decks=%d, cards=%d", len(doc.Folders), len(doc.Decks), len(doc.Cards))
	return nil
}

// Seed replaces the whole graph with doc and flushes it.
func (s *Store) Seed(ctx context.Context, doc models.Document) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")
	log.Info("seeding document: folders=%d, decks=%d, cards=%d", len(doc.Folders), len(doc.Decks), len(doc.Cards))

	doc = doc.Clone()
	doc.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = doc
	return s.flushLocked(ctx)
}

// Flush writes the current graph to the repository. Use it to retry after a
// mutation reported a STORAGE_ERROR.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushLocked(ctx)
}

// Snapshot returns a deep copy of the graph.
func (s *Store) Snapshot() models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Clone()
}

// Encode serializes a document in its stored form.
func Encode(doc models.Document) ([]byte, error) {
	doc = doc.Clone()
	doc.Normalize()
	return json.Marshal(doc)
}

// Decode parses a stored document.
func Decode(raw []byte) (models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return models.Document{}, err
	}
	doc.Normalize()
	return doc, nil
}

func (s *Store) flushLocked(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	raw, err := Encode(s.data)
	if err != nil {
		log.Error("failed to encode document: %v", err)
		return apperrors.NewInternalError(err)
	}
	if err := s.repo.Set(ctx, s.key, raw); err != nil {
		log.Error("failed to flush document (%d bytes): %v", len(raw), err)
		if s.onFlushError != nil {
			s.onFlushError(err)
		}
		return apperrors.NewStorageError("write", err)
	}
	log.Debug("document flushed: bytes=%d", len(raw))
	return nil
}

func (s *Store) deckIndex(id string) int {
	for i := range s.data.Decks {
		if s.data.Decks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) folderIndex(id string) int {
	for i := range s.data.Folders {
		if s.data.Folders[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) cardIndex(id string) int {
	for i := range s.data.Cards {
		if s.data.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

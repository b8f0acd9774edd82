package flashcard

import (
	"context"
	"strings"

	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// AddFolder creates an empty folder.
func (s *Store) AddFolder(ctx context.Context, name string) (models.Folder, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Folder{}, apperrors.NewValidationError("name", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	folder := models.Folder{ID: s.newID("folder"), Name: name, DeckIDs: []string{}}
	s.data.Folders = append(s.data.Folders, folder)
	log.Debug("folder added: id=%s, name=%q", folder.ID, folder.Name)

	return folder.Clone(), s.flushLocked(ctx)
}

// Folders returns every folder in store order.
func (s *Store) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Folder, len(s.data.Folders))
	for i, f := range s.data.Folders {
		out[i] = f.Clone()
	}
	return out
}

// GetFolderByID returns a copy of the folder, or nil when it does not exist.
func (s *Store) GetFolderByID(folderID string) *models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.folderIndex(folderID)
	if i < 0 {
		return nil
	}
	f := s.data.Folders[i].Clone()
	return &f
}

// GetDecksInFolder returns the decks listed by the folder, in store order.
// An unknown folder yields an empty slice.
func (s *Store) GetDecksInFolder(folderID string) []models.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Deck{}
	fi := s.folderIndex(folderID)
	if fi < 0 {
		return out
	}
	listed := s.data.Folders[fi].DeckIDs
	for _, d := range s.data.Decks {
		if contains(listed, d.ID) {
			out = append(out, d.Clone())
		}
	}
	return out
}

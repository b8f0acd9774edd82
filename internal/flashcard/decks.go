package flashcard

import (
	"context"
	"strings"

	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// GetDeckByID returns a copy of the deck, or nil when it does not exist.
func (s *Store) GetDeckByID(deckID string) *models.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.deckIndex(deckID)
	if i < 0 {
		return nil
	}
	d := s.data.Decks[i].Clone()
	return &d
}

// Decks returns every deck in store order.
func (s *Store) Decks() []models.Deck {
	return s.filterDecks(func(models.Deck) bool { return true })
}

// GetStandaloneDecks returns non-archived decks that are not inside a folder.
func (s *Store) GetStandaloneDecks() []models.Deck {
	return s.filterDecks(func(d models.Deck) bool {
		return !d.Archived && d.Standalone()
	})
}

// ArchivedDecks returns every archived deck, foldered or not.
func (s *Store) ArchivedDecks() []models.Deck {
	return s.filterDecks(func(d models.Deck) bool { return d.Archived })
}

func (s *Store) filterDecks(keep func(models.Deck) bool) []models.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Deck{}
	for _, d := range s.data.Decks {
		if keep(d) {
			out = append(out, d.Clone())
		}
	}
	return out
}

// AddDeck creates an empty deck and returns its id. When parentFolderID names
// an existing folder the deck is appended to it; an unknown folder id leaves
// the deck standalone so folder membership stays bidirectional.
func (s *Store) AddDeck(ctx context.Context, name, parentFolderID string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperrors.NewValidationError("name", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deck := models.Deck{ID: s.newID("deck"), Name: name}

	if parentFolderID != "" {
		if fi := s.folderIndex(parentFolderID); fi >= 0 {
			parent := parentFolderID
			deck.ParentFolderID = &parent
			s.data.Folders[fi].DeckIDs = append(s.data.Folders[fi].DeckIDs, deck.ID)
		} else {
			log.Warn("parent folder %s not found, creating standalone deck", parentFolderID)
		}
	}

	s.data.Decks = append(s.data.Decks, deck)
	log.Debug("deck added: id=%s, name=%q", deck.ID, deck.Name)

	return deck.ID, s.flushLocked(ctx)
}

// UpdateDeck replaces the stored deck with the same id. A changed parent
// folder moves the deck between folders.
func (s *Store) UpdateDeck(ctx context.Context, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	deck = deck.Clone()
	deck.Name = strings.TrimSpace(deck.Name)
	if deck.Name == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}
	if deck.TotalCards < 0 || deck.Easy < 0 || deck.Good < 0 || deck.Hard < 0 || deck.CardsLeft < 0 {
		return apperrors.NewValidationError("counters", "must not be negative")
	}
	if deck.ParentFolderID != nil && *deck.ParentFolderID == "" {
		deck.ParentFolderID = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.deckIndex(deck.ID)
	if i < 0 {
		return apperrors.NewNotFoundError("deck", deck.ID)
	}
	if deck.ParentFolderID != nil && s.folderIndex(*deck.ParentFolderID) < 0 {
		return apperrors.NewNotFoundError("folder", *deck.ParentFolderID)
	}

	old := s.data.Decks[i]
	if !sameParent(old.ParentFolderID, deck.ParentFolderID) {
		if old.ParentFolderID != nil {
			if fi := s.folderIndex(*old.ParentFolderID); fi >= 0 {
				s.data.Folders[fi].DeckIDs = without(s.data.Folders[fi].DeckIDs, deck.ID)
			}
		}
		if deck.ParentFolderID != nil {
			fi := s.folderIndex(*deck.ParentFolderID)
			if !contains(s.data.Folders[fi].DeckIDs, deck.ID) {
				s.data.Folders[fi].DeckIDs = append(s.data.Folders[fi].DeckIDs, deck.ID)
			}
		}
		log.Debug("deck %s moved between folders", deck.ID)
	}

	s.data.Decks[i] = deck
	log.Debug("deck updated: id=%s", deck.ID)
	return s.flushLocked(ctx)
}

// DeleteDeck removes the deck, drops it from every folder, deletes cards that
// belonged only to it and strips it from cards shared with other decks.
// Counters of the remaining decks are left alone.
func (s *Store) DeleteDeck(ctx context.Context, deckID string) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.deckIndex(deckID)
	if i < 0 {
		return apperrors.NewNotFoundError("deck", deckID)
	}

	decks := make([]models.Deck, 0, len(s.data.Decks)-1)
	decks = append(decks, s.data.Decks[:i]...)
	decks = append(decks, s.data.Decks[i+1:]...)

	for fi := range s.data.Folders {
		s.data.Folders[fi].DeckIDs = without(s.data.Folders[fi].DeckIDs, deckID)
	}

	cards := make([]models.Card, 0, len(s.data.Cards))
	removed, stripped := 0, 0
	for _, c := range s.data.Cards {
		if !c.InDeck(deckID) {
			cards = append(cards, c)
			continue
		}
		remaining := without(c.DeckIDs, deckID)
		if len(remaining) == 0 {
			removed++
			continue
		}
		c.DeckIDs = remaining
		cards = append(cards, c)
		stripped++
	}

	s.data.Decks = decks
	s.data.Cards = cards
	log.Debug("deck deleted: id=%s, cards_removed=%d, cards_kept=%d", deckID, removed, stripped)

	return s.flushLocked(ctx)
}

// ArchiveDeck hides the deck from the standalone listing.
func (s *Store) ArchiveDeck(ctx context.Context, deckID string) error {
	return s.setArchived(ctx, deckID, true)
}

// UnarchiveDeck restores an archived deck.
func (s *Store) UnarchiveDeck(ctx context.Context, deckID string) error {
	return s.setArchived(ctx, deckID, false)
}

func (s *Store) setArchived(ctx context.Context, deckID string, archived bool) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.deckIndex(deckID)
	if i < 0 {
		return apperrors.NewNotFoundError("deck", deckID)
	}
	s.data.Decks[i].Archived = archived
	log.Debug("deck %s archived=%t", deckID, archived)
	return s.flushLocked(ctx)
}

// RenameDeck sets the deck's name to the trimmed newName.
func (s *Store) RenameDeck(ctx context.Context, deckID, newName string) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	newName = strings.TrimSpace(newName)
	if newName == "" {
		return apperrors.NewValidationError("name", "must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.deckIndex(deckID)
	if i < 0 {
		return apperrors.NewNotFoundError("deck", deckID)
	}
	s.data.Decks[i].Name = newName
	log.Debug("deck renamed: id=%s, name=%q", deckID, newName)
	return s.flushLocked(ctx)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

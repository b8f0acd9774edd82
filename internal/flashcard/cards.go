package flashcard

import (
	"context"
	"fmt"

	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// GetCardsForDeck returns every card that belongs to deckID, in store order.
func (s *Store) GetCardsForDeck(deckID string) []models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Card{}
	for _, c := range s.data.Cards {
		if c.InDeck(deckID) {
			out = append(out, c.Clone())
		}
	}
	return out
}

// GetCardByID returns a copy of the card, or nil when it does not exist.
func (s *Store) GetCardByID(cardID string) *models.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.cardIndex(cardID)
	if i < 0 {
		return nil
	}
	c := s.data.Cards[i].Clone()
	return &c
}

// GroupCardsByDifficulty splits the deck's cards by their current rating.
func (s *Store) GroupCardsByDifficulty(deckID string) models.CardGroups {
	groups := models.CardGroups{
		Easy:  []models.Card{},
		Good:  []models.Card{},
		Hard:  []models.Card{},
		Never: []models.Card{},
	}
	for _, c := range s.GetCardsForDeck(deckID) {
		switch c.Difficulty {
		case models.Easy:
			groups.Easy = append(groups.Easy, c)
		case models.Good:
			groups.Good = append(groups.Good, c)
		case models.Hard:
			groups.Hard = append(groups.Hard, c)
		case models.Never:
			groups.Never = append(groups.Never, c)
		}
	}
	return groups
}

// AddCard creates a card in every deck listed by nc.DeckIDs. Each deck's
// totalCards, cardsLeft and the counter for the initial difficulty are
// incremented. The initial difficulty must be easy, good or hard. A zero
// NextReview defaults to now.
//
// When the flush fails the card is still created and returned alongside the
// STORAGE_ERROR.
func (s *Store) AddCard(ctx context.Context, nc models.NewCard) (models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	deckIDs := dedupe(nc.DeckIDs)
	if len(deckIDs) == 0 {
		return models.Card{}, apperrors.NewValidationError("deckIds", "at least one deck is required")
	}
	if !nc.Difficulty.Counted() {
		return models.Card{}, apperrors.NewValidationError("difficulty",
			fmt.Sprintf("initial difficulty must be easy, good or hard, got %q", nc.Difficulty))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	indexes := make([]int, 0, len(deckIDs))
	for _, id := range deckIDs {
		i := s.deckIndex(id)
		if i < 0 {
			return models.Card{}, apperrors.NewValidationError("deckIds", fmt.Sprintf("deck %s does not exist", id))
		}
		indexes = append(indexes, i)
	}

	nextReview := nc.NextReview
	if nextReview.IsZero() {
		nextReview = s.now()
	}

	card := models.Card{
		ID:         s.newID("card"),
		DeckIDs:    deckIDs,
		Question:   nc.Question,
		Answer:     nc.Answer,
		Difficulty: nc.Difficulty,
		NextReview: nextReview.UTC(),
	}

	for _, i := range indexes {
		d := &s.data.Decks[i]
		d.TotalCards++
		*d.Counter(card.Difficulty)++
		d.CardsLeft++
	}
	s.data.Cards = append(s.data.Cards, card)
	log.Debug("card added: id=%s, decks=%v, difficulty=%s", card.ID, card.DeckIDs, card.Difficulty)

	return card.Clone(), s.flushLocked(ctx)
}

// UpdateCardDifficulty records a new rating for the card. In every deck the
// card belongs to, the counter for the old rating is decremented (never below
// zero) and the counter for the new rating is incremented. totalCards and
// cardsLeft are not touched. Re-rating a card with its current difficulty
// leaves the counters unchanged.
func (s *Store) UpdateCardDifficulty(ctx context.Context, cardID string, difficulty models.Difficulty) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_store")

	if !difficulty.Valid() {
		return apperrors.NewValidationError("difficulty", fmt.Sprintf("unknown difficulty %q", difficulty))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ci := s.cardIndex(cardID)
	if ci < 0 {
		return apperrors.NewNotFoundError("card", cardID)
	}
	card := &s.data.Cards[ci]
	old := card.Difficulty

	if old != difficulty {
		for _, deckID := range card.DeckIDs {
			di := s.deckIndex(deckID)
			if di < 0 {
				log.Warn("card %s references missing deck %s", cardID, deckID)
				continue
			}
			d := &s.data.Decks[di]
			if p := d.Counter(old); p != nil && *p > 0 {
				*p--
			}
			if p := d.Counter(difficulty); p != nil {
				*p++
			}
		}
		card.Difficulty = difficulty
	}
	log.Debug("card difficulty updated: id=%s, %s -> %s", cardID, old, difficulty)

	return s.flushLocked(ctx)
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

package flashcard

import (
	"fmt"

	"github.com/vytor/flashdeck/internal/models"
)

// Inconsistency kinds reported by CheckConsistency.
const (
	KindDeckCounters     = "deck_counters"
	KindNegativeCounter  = "negative_counter"
	KindFolderMembership = "folder_membership"
	KindDanglingDeckRef  = "dangling_deck_ref"
	KindOrphanCard       = "orphan_card"
)

// Summary totals the counters of every non-archived deck.
func (s *Store) Summary() models.StudySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum models.StudySummary
	for _, d := range s.data.Decks {
		if d.Archived {
			sum.ArchivedDecks++
			continue
		}
		sum.ActiveDecks++
		sum.TotalCards += d.TotalCards
		sum.Easy += d.Easy
		sum.Good += d.Good
		sum.Hard += d.Hard
		sum.CardsLeft += d.CardsLeft
	}
	return sum
}

// CheckConsistency recomputes every deck's rating counters from the card list
// and checks folder/deck/card references. An empty result means the graph
// satisfies all invariants. cardsLeft is not checked; it does not derive from
// the card list.
func (s *Store) CheckConsistency() []models.Inconsistency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issues := []models.Inconsistency{}
	report := func(kind, id, format string, args ...any) {
		issues = append(issues, models.Inconsistency{Kind: kind, ID: id, Message: fmt.Sprintf(format, args...)})
	}

	type tally struct{ easy, good, hard, never int }
	counts := make(map[string]*tally, len(s.data.Decks))
	for _, d := range s.data.Decks {
		counts[d.ID] = &tally{}
	}

	for _, c := range s.data.Cards {
		if len(c.DeckIDs) == 0 {
			report(KindOrphanCard, c.ID, "card belongs to no deck")
		}
		for _, deckID := range c.DeckIDs {
			t, ok := counts[deckID]
			if !ok {
				report(KindDanglingDeckRef, c.ID, "card references missing deck %s", deckID)
				continue
			}
			switch c.Difficulty {
			case models.Easy:
				t.easy++
			case models.Good:
				t.good++
			case models.Hard:
				t.hard++
			case models.Never:
				t.never++
			}
		}
	}

	for _, d := range s.data.Decks {
		if d.TotalCards < 0 || d.Easy < 0 || d.Good < 0 || d.Hard < 0 || d.CardsLeft < 0 {
			report(KindNegativeCounter, d.ID, "deck has a negative counter")
		}
		t := counts[d.ID]
		total := t.easy + t.good + t.hard + t.never
		if d.Easy != t.easy || d.Good != t.good || d.Hard != t.hard || d.TotalCards != total {
			report(KindDeckCounters, d.ID,
				"counters easy=%d good=%d hard=%d total=%d, cards give easy=%d good=%d hard=%d total=%d",
				d.Easy, d.Good, d.Hard, d.TotalCards, t.easy, t.good, t.hard, total)
		}
		if d.ParentFolderID != nil {
			fi := s.folderIndex(*d.ParentFolderID)
			if fi < 0 {
				report(KindFolderMembership, d.ID, "parent folder %s does not exist", *d.ParentFolderID)
			} else if !contains(s.data.Folders[fi].DeckIDs, d.ID) {
				report(KindFolderMembership, d.ID, "parent folder %s does not list the deck", *d.ParentFolderID)
			}
		}
	}

	for _, f := range s.data.Folders {
		for _, deckID := range f.DeckIDs {
			di := s.deckIndex(deckID)
			if di < 0 {
				report(KindDanglingDeckRef, f.ID, "folder lists missing deck %s", deckID)
				continue
			}
			d := s.data.Decks[di]
			if d.ParentFolderID == nil || *d.ParentFolderID != f.ID {
				report(KindFolderMembership, f.ID, "folder lists deck %s whose parent is elsewhere", deckID)
			}
		}
	}

	return issues
}

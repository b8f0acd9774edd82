// Package seed builds the documents a fresh installation starts from.
package seed

import (
	"time"

	"github.com/vytor/flashdeck/internal/models"
)

// Sample returns the demo library: a "French Decks" folder with two decks,
// three standalone decks (one archived) and a handful of French cards, all due
// at now. Deck counters describe a larger library than the cards included,
// exactly as the demo data always has.
func Sample(now time.Time) models.Document {
	now = now.UTC()
	folder := "folder-1"
	deck := func(id, name string, total, easy, good, hard, left int, archived bool, parent *string) models.Deck {
		return models.Deck{
			ID: id, Name: name,
			TotalCards: total, Easy: easy, Good: good, Hard: hard, CardsLeft: left,
			Archived: archived, ParentFolderID: parent,
		}
	}
	card := func(id string, decks []string, q, a string, d models.Difficulty) models.Card {
		return models.Card{ID: id, DeckIDs: decks, Question: q, Answer: a, Difficulty: d, NextReview: now}
	}

	return models.Document{
		Folders: []models.Folder{
			{ID: folder, Name: "French Decks", DeckIDs: []string{"deck-1", "deck-2"}},
		},
		Decks: []models.Deck{
			deck("deck-1", "French 101", 10, 7, 1, 2, 5, false, &folder),
			deck("deck-2", "French 102", 8, 5, 2, 1, 4, false, &folder),
			deck("deck-3", "Spanish Basics", 15, 8, 4, 3, 7, false, nil),
			deck("deck-4", "Programming", 20, 12, 5, 3, 0, false, nil),
			deck("deck-5", "History", 12, 5, 3, 4, 6, true, nil),
		},
		Cards: []models.Card{
			card("card-1", []string{"deck-1"}, "How do you say 'hello' in French?", "Bonjour", models.Easy),
			card("card-2", []string{"deck-1"}, "How do you say 'goodbye' in French?", "Au revoir", models.Easy),
			card("card-3", []string{"deck-1"}, "How do you say 'thank you' in French?", "Merci", models.Good),
			card("card-4", []string{"deck-1", "deck-3"}, "What's the French word for 'house'?", "Maison", models.Hard),
			card("card-5", []string{"deck-1"}, "Count from 1 to 5 in French", "Un, deux, trois, quatre, cinq", models.Easy),
		},
	}
}

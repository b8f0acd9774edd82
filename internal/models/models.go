package models

import "time"

// Difficulty is the rating a card received at its last review.
type Difficulty string

const (
	Easy  Difficulty = "easy"
	Good  Difficulty = "good"
	Hard  Difficulty = "hard"
	Never Difficulty = "never"
)

// Difficulties lists every rating in display order.
var Difficulties = []Difficulty{Easy, Good, Hard, Never}

// Valid reports whether d is one of the known ratings.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Good, Hard, Never:
		return true
	}
	return false
}

// Counted reports whether decks keep a dedicated counter for d.
// Cards rated "never" only contribute to a deck's TotalCards.
func (d Difficulty) Counted() bool {
	return d == Easy || d == Good || d == Hard
}

type Folder struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	DeckIDs []string `json:"decks"`
}

type Deck struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	TotalCards     int     `json:"totalCards"`
	Easy           int     `json:"easy"`
	Good           int     `json:"good"`
	Hard           int     `json:"hard"`
	CardsLeft      int     `json:"cardsLeft"`
	Archived       bool    `json:"archived"`
	ParentFolderID *string `json:"parentFolder"`
}

// Standalone reports whether the deck lives outside any folder.
func (d Deck) Standalone() bool {
	return d.ParentFolderID == nil || *d.ParentFolderID == ""
}

// Counter returns a pointer to the deck counter tracking diff, or nil
// when the rating has no counter of its own.
func (d *Deck) Counter(diff Difficulty) *int {
	switch diff {
	case Easy:
		return &d.Easy
	case Good:
		return &d.Good
	case Hard:
		return &d.Hard
	}
	return nil
}

type Card struct {
	ID         string     `json:"id"`
	DeckIDs    []string   `json:"deckIds"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
	NextReview time.Time  `json:"nextReview"`
}

// InDeck reports whether the card belongs to deckID.
func (c Card) InDeck(deckID string) bool {
	for _, id := range c.DeckIDs {
		if id == deckID {
			return true
		}
	}
	return false
}

// NewCard carries the caller-supplied fields of a card about to be created.
type NewCard struct {
	Question   string
	Answer     string
	Difficulty Difficulty
	DeckIDs    []string
	NextReview time.Time
}

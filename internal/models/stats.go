package models

// StudySummary aggregates counters over all non-archived decks.
type StudySummary struct {
	ActiveDecks   int `json:"active_decks"`
	ArchivedDecks int `json:"archived_decks"`
	TotalCards    int `json:"total_cards"`
	Easy          int `json:"easy"`
	Good          int `json:"good"`
	Hard          int `json:"hard"`
	CardsLeft     int `json:"cards_left"`
}

// CardGroups splits a deck's cards by their current rating.
type CardGroups struct {
	Easy  []Card `json:"easy"`
	Good  []Card `json:"good"`
	Hard  []Card `json:"hard"`
	Never []Card `json:"never"`
}

// Inconsistency describes a broken invariant found in the graph.
type Inconsistency struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

package models

import "time"

// ReviewSession walks a shuffled copy of a deck's cards.
type ReviewSession struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	CardIDs   []string  `json:"card_ids"`
	Index     int       `json:"index"`
	Completed []string  `json:"completed"`
	Done      bool      `json:"done"`
	StartedAt time.Time `json:"started_at"`
}

// CurrentCardID returns the card under the cursor, or "" when the session
// has no cards or is finished.
func (s ReviewSession) CurrentCardID() string {
	if s.Done || s.Index < 0 || s.Index >= len(s.CardIDs) {
		return ""
	}
	return s.CardIDs[s.Index]
}

// IsLast reports whether the cursor is on the final card.
func (s ReviewSession) IsLast() bool {
	return s.Index == len(s.CardIDs)-1
}

func (s ReviewSession) Clone() ReviewSession {
	s.CardIDs = append([]string{}, s.CardIDs...)
	s.Completed = append([]string{}, s.Completed...)
	return s
}

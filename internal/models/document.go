package models

// Document is the persisted shape of the whole flashcard graph.
type Document struct {
	Folders []Folder `json:"folders"`
	Decks   []Deck   `json:"decks"`
	Cards   []Card   `json:"cards"`
}

// EmptyDocument returns a document with non-nil, empty collections so it
// serializes as arrays rather than nulls.
func EmptyDocument() Document {
	return Document{
		Folders: []Folder{},
		Decks:   []Deck{},
		Cards:   []Card{},
	}
}

// Normalize replaces nil collections with empty ones and puts review times
// in UTC, the form they take after a round trip through storage.
func (d *Document) Normalize() {
	if d.Folders == nil {
		d.Folders = []Folder{}
	}
	if d.Decks == nil {
		d.Decks = []Deck{}
	}
	if d.Cards == nil {
		d.Cards = []Card{}
	}
	for i := range d.Folders {
		if d.Folders[i].DeckIDs == nil {
			d.Folders[i].DeckIDs = []string{}
		}
	}
	for i := range d.Cards {
		if d.Cards[i].DeckIDs == nil {
			d.Cards[i].DeckIDs = []string{}
		}
		d.Cards[i].NextReview = d.Cards[i].NextReview.UTC()
	}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		Folders: make([]Folder, len(d.Folders)),
		Decks:   make([]Deck, len(d.Decks)),
		Cards:   make([]Card, len(d.Cards)),
	}
	for i, f := range d.Folders {
		out.Folders[i] = f.Clone()
	}
	for i, dk := range d.Decks {
		out.Decks[i] = dk.Clone()
	}
	for i, c := range d.Cards {
		out.Cards[i] = c.Clone()
	}
	return out
}

func (f Folder) Clone() Folder {
	f.DeckIDs = append([]string{}, f.DeckIDs...)
	return f
}

func (d Deck) Clone() Deck {
	if d.ParentFolderID != nil {
		id := *d.ParentFolderID
		d.ParentFolderID = &id
	}
	return d
}

func (c Card) Clone() Card {
	c.DeckIDs = append([]string{}, c.DeckIDs...)
	return c
}

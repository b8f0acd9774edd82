package flashcard_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	apperrors "github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/memory"
	"github.com/vytor/flashdeck/internal/testutil/mocks"
)

func sequentialIDs() func(string) string {
	var mu sync.Mutex
	n := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

type StoreSuite struct {
	suite.Suite
	ctx   context.Context
	repo  repository.DocumentRepository
	store *flashcard.Store
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = memory.NewDocumentRepository(0)
	s.store = flashcard.New(s.repo,
		flashcard.WithIDGenerator(sequentialIDs()),
		flashcard.WithClock(func() time.Time { return fixedNow }),
	)
	s.Require().NoError(s.store.Seed(s.ctx, models.EmptyDocument()))
}

func (s *StoreSuite) addDeck(name, folderID string) string {
	id, err := s.store.AddDeck(s.ctx, name, folderID)
	s.Require().NoError(err)
	return id
}

func (s *StoreSuite) addCard(q string, diff models.Difficulty, deckIDs ...string) models.Card {
	card, err := s.store.AddCard(s.ctx, models.NewCard{
		Question:   q,
		Answer:     "answer to " + q,
		Difficulty: diff,
		DeckIDs:    deckIDs,
	})
	s.Require().NoError(err)
	return card
}

func (s *StoreSuite) deck(id string) models.Deck {
	d := s.store.GetDeckByID(id)
	s.Require().NotNil(d, "deck %s should exist", id)
	return *d
}

func (s *StoreSuite) TestAddDeck_StartsEmpty() {
	id := s.addDeck("Spanish Basics", "")

	d := s.deck(id)
	s.Assert().Equal("Spanish Basics", d.Name)
	s.Assert().Zero(d.TotalCards)
	s.Assert().Zero(d.Easy)
	s.Assert().Zero(d.Good)
	s.Assert().Zero(d.Hard)
	s.Assert().Zero(d.CardsLeft)
	s.Assert().False(d.Archived)
	s.Assert().True(d.Standalone())
}

func (s *StoreSuite) TestAddDeck_BlankNameRejected() {
	_, err := s.store.AddDeck(s.ctx, "   ", "")
	s.Assert().True(apperrors.IsValidation(err))
	s.Assert().Empty(s.store.Decks())
}

func (s *StoreSuite) TestAddDeck_UnknownFolderCreatesStandalone() {
	id := s.addDeck("Loose", "folder-missing")

	s.Assert().True(s.deck(id).Standalone())
	s.Assert().Empty(s.store.CheckConsistency())
}

func (s *StoreSuite) TestFolderScenario() {
	folder, err := s.store.AddFolder(s.ctx, "French")
	s.Require().NoError(err)
	s.Assert().Empty(folder.DeckIDs)

	id := s.addDeck("101", folder.ID)

	decks := s.store.GetDecksInFolder(folder.ID)
	s.Require().Len(decks, 1)
	s.Assert().Equal("101", decks[0].Name)
	s.Assert().Equal(folder.ID, *decks[0].ParentFolderID)
	s.Assert().Equal([]string{id}, s.store.GetFolderByID(folder.ID).DeckIDs)

	s.Assert().Empty(s.store.GetStandaloneDecks(), "foldered decks are not standalone")
	s.Assert().Empty(s.store.GetDecksInFolder("folder-unknown"))
}

func (s *StoreSuite) TestAddFolder_BlankNameRejected() {
	_, err := s.store.AddFolder(s.ctx, "")
	s.Assert().True(apperrors.IsValidation(err))
	s.Assert().Empty(s.store.Folders())
}

func (s *StoreSuite) TestRatingScenario() {
	d1 := s.addDeck("d1", "")
	card := s.addCard("Hi", models.Easy, d1)
	s.Assert().Equal("Hi", card.Question)
	s.Assert().Equal(fixedNow, card.NextReview)

	before := s.deck(d1)
	s.Require().NoError(s.store.UpdateCardDifficulty(s.ctx, card.ID, models.Hard))

	after := s.deck(d1)
	s.Assert().Equal(0, after.Easy)
	s.Assert().Equal(1, after.Hard)
	s.Assert().Equal(before.TotalCards, after.TotalCards)
	s.Assert().Equal(before.CardsLeft, after.CardsLeft, "rating never touches cardsLeft")
	s.Assert().Equal(models.Hard, s.store.GetCardByID(card.ID).Difficulty)
}

func (s *StoreSuite) TestAddCard_IncrementsEveryDeck() {
	a := s.addDeck("a", "")
	b := s.addDeck("b", "")

	s.addCard("shared", models.Good, a, b, a)

	for _, id := range []string{a, b} {
		d := s.deck(id)
		s.Assert().Equal(1, d.TotalCards)
		s.Assert().Equal(1, d.Good)
		s.Assert().Equal(1, d.CardsLeft)
	}
	s.Assert().Len(s.store.GetCardsForDeck(a), 1)
	s.Assert().Equal([]string{a, b}, s.store.GetCardsForDeck(b)[0].DeckIDs)
}

func (s *StoreSuite) TestAddCard_Validation() {
	d := s.addDeck("d", "")
	before := s.store.Snapshot()

	tests := []struct {
		name string
		card models.NewCard
	}{
		{"no decks", models.NewCard{Question: "q", Difficulty: models.Easy}},
		{"never is not an initial rating", models.NewCard{Question: "q", Difficulty: models.Never, DeckIDs: []string{d}}},
		{"unknown rating", models.NewCard{Question: "q", Difficulty: "meh", DeckIDs: []string{d}}},
		{"unknown deck", models.NewCard{Question: "q", Difficulty: models.Easy, DeckIDs: []string{d, "deck-nope"}}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.store.AddCard(s.ctx, tt.card)
			s.Assert().True(apperrors.IsValidation(err), "got %v", err)
			s.Assert().Equal(before, s.store.Snapshot(), "failed call must not change the graph")
		})
	}
}

func (s *StoreSuite) TestUpdateCardDifficulty_Errors() {
	err := s.store.UpdateCardDifficulty(s.ctx, "card-missing", models.Easy)
	s.Assert().True(apperrors.IsNotFound(err))

	d := s.addDeck("d", "")
	card := s.addCard("q", models.Easy, d)
	err = s.store.UpdateCardDifficulty(s.ctx, card.ID, "sometimes")
	s.Assert().True(apperrors.IsValidation(err))
	s.Assert().Equal(1, s.deck(d).Easy)
}

func (s *StoreSuite) TestUpdateCardDifficulty_NeverGoesNegative() {
	d := s.addDeck("d", "")
	card := s.addCard("q", models.Good, d)

	sequence := []models.Difficulty{
		models.Good, models.Good, models.Never, models.Never, models.Easy,
		models.Easy, models.Hard, models.Never, models.Good, models.Good,
	}
	for _, diff := range sequence {
		s.Require().NoError(s.store.UpdateCardDifficulty(s.ctx, card.ID, diff))
		got := s.deck(d)
		s.Assert().GreaterOrEqual(got.Easy, 0)
		s.Assert().GreaterOrEqual(got.Good, 0)
		s.Assert().GreaterOrEqual(got.Hard, 0)
		s.Assert().Empty(s.store.CheckConsistency(), "after rating %s", diff)
	}
	s.Assert().Equal(1, s.deck(d).Good)
}

func (s *StoreSuite) TestUpdateCardDifficulty_FloorsDriftedCounters() {
	d := s.addDeck("d", "")
	card := s.addCard("q", models.Easy, d)

	drifted := s.deck(d)
	drifted.Easy = 0
	s.Require().NoError(s.store.UpdateDeck(s.ctx, drifted))

	s.Require().NoError(s.store.UpdateCardDifficulty(s.ctx, card.ID, models.Hard))
	got := s.deck(d)
	s.Assert().Equal(0, got.Easy)
	s.Assert().Equal(1, got.Hard)
}

func (s *StoreSuite) TestCounterInvariant_RandomSequence() {
	rng := rand.New(rand.NewSource(42))
	decks := []string{s.addDeck("a", ""), s.addDeck("b", ""), s.addDeck("c", "")}
	initial := []models.Difficulty{models.Easy, models.Good, models.Hard}
	var cards []string

	for step := 0; step < 300; step++ {
		if len(cards) == 0 || rng.Intn(3) == 0 {
			n := 1 + rng.Intn(len(decks))
			perm := rng.Perm(len(decks))[:n]
			ids := make([]string, 0, n)
			for _, p := range perm {
				ids = append(ids, decks[p])
			}
			card := s.addCard(fmt.Sprintf("q%d", step), initial[rng.Intn(len(initial))], ids...)
			cards = append(cards, card.ID)
			continue
		}
		cardID := cards[rng.Intn(len(cards))]
		diff := models.Difficulties[rng.Intn(len(models.Difficulties))]
		s.Require().NoError(s.store.UpdateCardDifficulty(s.ctx, cardID, diff))
	}

	s.Assert().Empty(s.store.CheckConsistency())
	for _, id := range decks {
		d := s.deck(id)
		never := 0
		for _, c := range s.store.GetCardsForDeck(id) {
			if c.Difficulty == models.Never {
				never++
			}
		}
		s.Assert().Equal(d.TotalCards, d.Easy+d.Good+d.Hard+never)
		s.Assert().Equal(d.TotalCards, d.CardsLeft, "cardsLeft only ever grows with additions")
	}
}

func (s *StoreSuite) TestDeleteDeck_CascadesToFoldersAndCards() {
	folder, err := s.store.AddFolder(s.ctx, "Languages")
	s.Require().NoError(err)
	x := s.addDeck("x", folder.ID)
	y := s.addDeck("y", folder.ID)

	only := s.addCard("only in x", models.Easy, x)
	shared := s.addCard("in x and y", models.Hard, x, y)
	yBefore := s.deck(y)

	s.Require().NoError(s.store.DeleteDeck(s.ctx, x))

	s.Assert().Nil(s.store.GetDeckByID(x))
	s.Assert().Equal([]string{y}, s.store.GetFolderByID(folder.ID).DeckIDs)
	s.Assert().Nil(s.store.GetCardByID(only.ID))

	kept := s.store.GetCardByID(shared.ID)
	s.Require().NotNil(kept)
	s.Assert().Equal([]string{y}, kept.DeckIDs)
	s.Assert().Equal(yBefore, s.deck(y), "other decks' counters are untouched")
	s.Assert().Empty(s.store.CheckConsistency())
}

func (s *StoreSuite) TestDeleteDeck_Unknown() {
	err := s.store.DeleteDeck(s.ctx, "deck-missing")
	s.Assert().True(apperrors.IsNotFound(err))
}

func (s *StoreSuite) TestArchiveAndUnarchive() {
	id := s.addDeck("History", "")

	s.Require().NoError(s.store.ArchiveDeck(s.ctx, id))
	s.Assert().True(s.deck(id).Archived)
	s.Assert().Empty(s.store.GetStandaloneDecks())
	s.Assert().Len(s.store.ArchivedDecks(), 1)

	s.Require().NoError(s.store.UnarchiveDeck(s.ctx, id))
	s.Assert().False(s.deck(id).Archived)
	s.Assert().Len(s.store.GetStandaloneDecks(), 1)

	s.Assert().True(apperrors.IsNotFound(s.store.ArchiveDeck(s.ctx, "deck-missing")))
	s.Assert().True(apperrors.IsNotFound(s.store.UnarchiveDeck(s.ctx, "deck-missing")))
}

func (s *StoreSuite) TestRenameDeck() {
	id := s.addDeck("Old", "")

	s.Require().NoError(s.store.RenameDeck(s.ctx, id, "  New name  "))
	s.Assert().Equal("New name", s.deck(id).Name)

	s.Assert().True(apperrors.IsValidation(s.store.RenameDeck(s.ctx, id, " \t ")))
	s.Assert().Equal("New name", s.deck(id).Name)
	s.Assert().True(apperrors.IsNotFound(s.store.RenameDeck(s.ctx, "deck-missing", "x")))
}

func (s *StoreSuite) TestUpdateDeck_MovesBetweenFolders() {
	from, err := s.store.AddFolder(s.ctx, "from")
	s.Require().NoError(err)
	to, err := s.store.AddFolder(s.ctx, "to")
	s.Require().NoError(err)
	id := s.addDeck("deck", from.ID)

	d := s.deck(id)
	d.ParentFolderID = &to.ID
	s.Require().NoError(s.store.UpdateDeck(s.ctx, d))

	s.Assert().Empty(s.store.GetDecksInFolder(from.ID))
	s.Assert().Len(s.store.GetDecksInFolder(to.ID), 1)

	d.ParentFolderID = nil
	s.Require().NoError(s.store.UpdateDeck(s.ctx, d))
	s.Assert().Empty(s.store.GetDecksInFolder(to.ID))
	s.Assert().Len(s.store.GetStandaloneDecks(), 1)
	s.Assert().Empty(s.store.CheckConsistency())
}

func (s *StoreSuite) TestUpdateDeck_Errors() {
	s.Assert().True(apperrors.IsNotFound(s.store.UpdateDeck(s.ctx, models.Deck{ID: "deck-missing", Name: "x"})))

	id := s.addDeck("deck", "")
	d := s.deck(id)
	d.Hard = -1
	s.Assert().True(apperrors.IsValidation(s.store.UpdateDeck(s.ctx, d)))

	d = s.deck(id)
	missing := "folder-missing"
	d.ParentFolderID = &missing
	s.Assert().True(apperrors.IsNotFound(s.store.UpdateDeck(s.ctx, d)))
}

func (s *StoreSuite) TestSummaryAndGroups() {
	a := s.addDeck("a", "")
	b := s.addDeck("b", "")
	s.addCard("1", models.Easy, a)
	hard := s.addCard("2", models.Hard, a, b)
	s.Require().NoError(s.store.UpdateCardDifficulty(s.ctx, hard.ID, models.Never))
	s.Require().NoError(s.store.ArchiveDeck(s.ctx, b))

	sum := s.store.Summary()
	s.Assert().Equal(1, sum.ActiveDecks)
	s.Assert().Equal(1, sum.ArchivedDecks)
	s.Assert().Equal(2, sum.TotalCards)
	s.Assert().Equal(1, sum.Easy)
	s.Assert().Equal(0, sum.Hard)
	s.Assert().Equal(2, sum.CardsLeft)

	groups := s.store.GroupCardsByDifficulty(a)
	s.Assert().Len(groups.Easy, 1)
	s.Assert().Len(groups.Never, 1)
	s.Assert().Empty(groups.Good)
	s.Assert().Empty(groups.Hard)
}

func (s *StoreSuite) TestSnapshotIsACopy() {
	folder, err := s.store.AddFolder(s.ctx, "f")
	s.Require().NoError(err)
	s.addDeck("d", folder.ID)

	snap := s.store.Snapshot()
	snap.Folders[0].DeckIDs[0] = "tampered"
	*snap.Decks[0].ParentFolderID = "tampered"

	s.Assert().Empty(s.store.CheckConsistency())
}

func (s *StoreSuite) TestRoundTrip() {
	folder, err := s.store.AddFolder(s.ctx, "French")
	s.Require().NoError(err)
	a := s.addDeck("101", folder.ID)
	b := s.addDeck("Spanish", "")
	s.addCard("Hi", models.Easy, a)
	c := s.addCard("Casa", models.Good, a, b)
	s.Require().NoError(s.store.UpdateCardDifficulty(s.ctx, c.ID, models.Never))

	want := s.store.Snapshot()

	raw, err := flashcard.Encode(want)
	s.Require().NoError(err)
	decoded, err := flashcard.Decode(raw)
	s.Require().NoError(err)
	s.Assert().Equal(want, decoded)

	reloaded := flashcard.New(s.repo)
	s.Require().NoError(reloaded.Load(s.ctx))
	s.Assert().Equal(want, reloaded.Snapshot())
}

func (s *StoreSuite) TestConcurrentAddsStayConsistent() {
	id := s.addDeck("busy", "")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.store.AddCard(s.ctx, models.NewCard{Question: fmt.Sprint(i), Difficulty: models.Hard, DeckIDs: []string{id}})
			s.Assert().NoError(err)
		}(i)
	}
	wg.Wait()

	s.Assert().Equal(20, s.deck(id).Hard)
	s.Assert().Empty(s.store.CheckConsistency())
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func TestLoad_MissingDocument(t *testing.T) {
	ctx := context.Background()
	store := flashcard.New(memory.NewDocumentRepository(0))

	err := store.Load(ctx)
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

type LoadSuite struct {
	suite.Suite
}

func (s *LoadSuite) TestMalformedDocument() {
	ctx := context.Background()
	repo := memory.NewDocumentRepository(0)
	s.Require().NoError(repo.Set(ctx, flashcard.DefaultKey, []byte(`{"decks": [`)))

	store := flashcard.New(repo)
	err := store.Load(ctx)
	s.Assert().True(apperrors.IsParse(err))
	s.Assert().Equal(models.EmptyDocument(), store.Snapshot())
}

func (s *LoadSuite) TestCustomKeyAndNullCollections() {
	ctx := context.Background()
	repo := memory.NewDocumentRepository(0)
	s.Require().NoError(repo.Set(ctx, "custom", []byte(`{"folders":null,"decks":[{"id":"deck-1","name":"A","parentFolder":null}],"cards":null}`)))

	store := flashcard.New(repo, flashcard.WithKey("custom"))
	s.Require().NoError(store.Load(ctx))
	s.Assert().Equal("custom", store.Key())
	s.Assert().Len(store.GetStandaloneDecks(), 1)
	s.Assert().NotNil(store.Snapshot().Cards)
}

func (s *LoadSuite) TestReadFailure() {
	ctx := context.Background()
	repo := new(mocks.MockDocumentRepository)
	repo.On("Get", mock.Anything, flashcard.DefaultKey).Return(nil, fmt.Errorf("disk on fire"))

	err := flashcard.New(repo).Load(ctx)
	s.Assert().True(apperrors.IsStorage(err))
	repo.AssertExpectations(s.T())
}

func (s *LoadSuite) TestSeedRoundTripsZonedReviewTimes() {
	ctx := context.Background()
	repo := memory.NewDocumentRepository(0)
	cet := time.FixedZone("CET", 3600)
	doc := models.Document{
		Folders: []models.Folder{},
		Decks:   []models.Deck{{ID: "deck-1", Name: "French", TotalCards: 1, Easy: 1, CardsLeft: 1}},
		Cards: []models.Card{{
			ID: "card-1", DeckIDs: []string{"deck-1"}, Question: "Chat?", Answer: "Cat",
			Difficulty: models.Easy, NextReview: time.Date(2026, 10, 18, 10, 30, 0, 0, cet),
		}},
	}

	seeded := flashcard.New(repo)
	s.Require().NoError(seeded.Seed(ctx, doc))

	reloaded := flashcard.New(repo)
	s.Require().NoError(reloaded.Load(ctx))
	s.Assert().Equal(seeded.Snapshot(), reloaded.Snapshot())
	s.Assert().Equal(time.UTC, reloaded.Snapshot().Cards[0].NextReview.Location())
	s.Assert().True(doc.Cards[0].NextReview.Equal(reloaded.Snapshot().Cards[0].NextReview))
}

func TestLoadSuite(t *testing.T) {
	suite.Run(t, new(LoadSuite))
}

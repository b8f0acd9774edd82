package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/flashdeck/internal/models"
)

// MockDeckStore is a mock implementation of services.DeckStore
type MockDeckStore struct {
	mock.Mock
}

func (m *MockDeckStore) GetDeckByID(deckID string) *models.Deck {
	args := m.Called(deckID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Deck)
}

func (m *MockDeckStore) GetCardsForDeck(deckID string) []models.Card {
	args := m.Called(deckID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Card)
}

func (m *MockDeckStore) UpdateCardDifficulty(ctx context.Context, cardID string, difficulty models.Difficulty) error {
	args := m.Called(ctx, cardID, difficulty)
	return args.Error(0)
}

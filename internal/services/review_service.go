package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// DeckStore is the slice of the flashcard store a review needs.
type DeckStore interface {
	GetDeckByID(deckID string) *models.Deck
	GetCardsForDeck(deckID string) []models.Card
	UpdateCardDifficulty(ctx context.Context, cardID string, difficulty models.Difficulty) error
}

// ReviewService runs review sessions over a deck
type ReviewService interface {
	Start(ctx context.Context, deckID string) (*models.ReviewSession, error)
	Get(ctx context.Context, sessionID string) (*models.ReviewSession, error)
	Rate(ctx context.Context, sessionID string, difficulty models.Difficulty) (*models.ReviewSession, error)
	Next(ctx context.Context, sessionID string) (*models.ReviewSession, error)
	Previous(ctx context.Context, sessionID string) (*models.ReviewSession, error)
	End(ctx context.Context, sessionID string) error
}

type reviewService struct {
	store DeckStore

	mu       sync.Mutex
	rng      *rand.Rand
	sessions map[string]*models.ReviewSession
	now      func() time.Time
}

// NewReviewService creates a ReviewService. rng controls the shuffle order;
// nil seeds one from the clock.
func NewReviewService(store DeckStore, rng *rand.Rand) ReviewService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &reviewService{
		store:    store,
		rng:      rng,
		sessions: map[string]*models.ReviewSession{},
		now:      time.Now,
	}
}

func (s *reviewService) Start(ctx context.Context, deckID string) (*models.ReviewSession, error) {
	log := logger.FromContext(ctx).WithPrefix("review")

	if s.store.GetDeckByID(deckID) == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards := s.store.GetCardsForDeck(deckID)
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	session := &models.ReviewSession{
		ID:        uuid.NewString(),
		DeckID:    deckID,
		CardIDs:   ids,
		Completed: []string{},
		Done:      len(ids) == 0,
		StartedAt: s.now().UTC(),
	}
	s.sessions[session.ID] = session

	log.Debug("review started: session=%s, deck=%s, cards=%d", session.ID, deckID, len(ids))
	out := session.Clone()
	return &out, nil
}

func (s *reviewService) Get(ctx context.Context, sessionID string) (*models.ReviewSession, error) {
	return s.update(sessionID, func(*models.ReviewSession) error { return nil })
}

// Rate records the rating for the current card and advances. Rating the last
// card finishes the session. A STORAGE_ERROR from the store still advances the
// session and is returned alongside it. A card deleted since the session
// started is skipped without being recorded as completed.
func (s *reviewService) Rate(ctx context.Context, sessionID string, difficulty models.Difficulty) (*models.ReviewSession, error) {
	log := logger.FromContext(ctx).WithPrefix("review")

	var flushErr error
	session, err := s.update(sessionID, func(session *models.ReviewSession) error {
		cardID := session.CurrentCardID()
		if cardID == "" {
			return errors.NewValidationError("session", "no card to rate")
		}
		err := s.store.UpdateCardDifficulty(ctx, cardID, difficulty)
		switch {
		case err == nil:
			session.Completed = append(session.Completed, cardID)
		case errors.IsNotFound(err):
			log.Warn("card %s no longer exists, skipping: session=%s", cardID, session.ID)
		case errors.IsStorage(err):
			log.Warn("rating for card %s not persisted: %v", cardID, err)
			flushErr = err
			session.Completed = append(session.Completed, cardID)
		default:
			return err
		}

		if session.IsLast() {
			session.Done = true
			log.Info("review completed: session=%s, rated=%d", session.ID, len(session.Completed))
		} else {
			session.Index++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, flushErr
}

func (s *reviewService) Next(ctx context.Context, sessionID string) (*models.ReviewSession, error) {
	return s.update(sessionID, func(session *models.ReviewSession) error {
		if !session.Done && session.Index < len(session.CardIDs)-1 {
			session.Index++
		}
		return nil
	})
}

func (s *reviewService) Previous(ctx context.Context, sessionID string) (*models.ReviewSession, error) {
	return s.update(sessionID, func(session *models.ReviewSession) error {
		if !session.Done && session.Index > 0 {
			session.Index--
		}
		return nil
	})
}

func (s *reviewService) End(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return errors.NewNotFoundError("review session", sessionID)
	}
	delete(s.sessions, sessionID)
	logger.FromContext(ctx).WithPrefix("review").Debug("review ended: session=%s", sessionID)
	return nil
}

func (s *reviewService) update(sessionID string, fn func(*models.ReviewSession) error) (*models.ReviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("review session", sessionID)
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	out := session.Clone()
	return &out, nil
}

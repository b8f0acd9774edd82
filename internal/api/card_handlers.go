package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
)

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createCardRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.Store.AddCard(r.Context(), req.newCard())
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.WithField("decks", card.DeckIDs).Info("card created: %s", card.ID)
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	card := s.Store.GetCardByID(id)
	if card == nil {
		handleError(w, r, errors.NewNotFoundError("card", id))
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleUpdateDifficulty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req difficultyRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context()).WithFields(map[string]any{
		"card_id":    id,
		"difficulty": req.Difficulty,
	})
	log.Debug("rating card")

	if err := s.Store.UpdateCardDifficulty(r.Context(), id, req.Difficulty); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GetCardByID(id))
}

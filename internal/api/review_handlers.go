package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// reviewResponse pairs a session with the card under its cursor.
type reviewResponse struct {
	Session *models.ReviewSession `json:"session"`
	Card    *models.Card          `json:"card"`
}

func (s *Server) reviewResponse(session *models.ReviewSession) reviewResponse {
	resp := reviewResponse{Session: session}
	if id := session.CurrentCardID(); id != "" {
		resp.Card = s.Store.GetCardByID(id)
	}
	return resp
}

func (s *Server) handleStartReview(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "id")

	session, err := s.Reviews.Start(r.Context(), deckID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("review started: session=%s, deck=%s", session.ID, deckID)
	writeJSON(w, r, http.StatusCreated, s.reviewResponse(session))
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	s.moveReview(w, r, s.Reviews.Get)
}

func (s *Server) handleNextReview(w http.ResponseWriter, r *http.Request) {
	s.moveReview(w, r, s.Reviews.Next)
}

func (s *Server) handlePreviousReview(w http.ResponseWriter, r *http.Request) {
	s.moveReview(w, r, s.Reviews.Previous)
}

func (s *Server) moveReview(w http.ResponseWriter, r *http.Request, move func(context.Context, string) (*models.ReviewSession, error)) {
	session, err := move(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.reviewResponse(session))
}

func (s *Server) handleRateReview(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.Reviews.Rate(r.Context(), chi.URLParam(r, "id"), req.Difficulty)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.reviewResponse(session))
}

func (s *Server) handleEndReview(w http.ResponseWriter, r *http.Request) {
	if err := s.Reviews.End(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

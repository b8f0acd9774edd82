package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
)

func (s *Server) handleStandaloneDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Store.GetStandaloneDecks())
}

func (s *Server) handleArchivedDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Store.ArchivedDecks())
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createDeckRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	id, err := s.Store.AddDeck(r.Context(), req.Name, req.ParentFolderID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("deck created: %s", id)
	writeJSON(w, r, http.StatusCreated, s.Store.GetDeckByID(id))
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deck := s.Store.GetDeckByID(id)
	if deck == nil {
		handleError(w, r, errors.NewNotFoundError("deck", id))
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateDeckRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.ID != "" && req.ID != id {
		handleError(w, r, errors.NewBadRequestError("deck id in body does not match path"))
		return
	}
	if err := s.Store.UpdateDeck(r.Context(), req.deck(id)); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GetDeckByID(id))
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.DeleteDeck(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("deck deleted: %s", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleArchiveDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.ArchiveDeck(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GetDeckByID(id))
}

func (s *Server) handleUnarchiveDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.UnarchiveDeck(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GetDeckByID(id))
}

func (s *Server) handleRenameDeck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req renameDeckRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Store.RenameDeck(r.Context(), id, req.Name); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GetDeckByID(id))
}

func (s *Server) handleDeckCards(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.Store.GetDeckByID(id) == nil {
		handleError(w, r, errors.NewNotFoundError("deck", id))
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GetCardsForDeck(id))
}

func (s *Server) handleDeckGroups(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.Store.GetDeckByID(id) == nil {
		handleError(w, r, errors.NewNotFoundError("deck", id))
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GroupCardsByDifficulty(id))
}

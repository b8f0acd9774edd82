package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
)

func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Store.Folders())
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createFolderRequest
	if err := decodeRequest(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	folder, err := s.Store.AddFolder(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("folder created: %s", folder.ID)
	writeJSON(w, r, http.StatusCreated, folder)
}

func (s *Server) handleGetFolder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	folder := s.Store.GetFolderByID(id)
	if folder == nil {
		handleError(w, r, errors.NewNotFoundError("folder", id))
		return
	}
	writeJSON(w, r, http.StatusOK, folder)
}

func (s *Server) handleFolderDecks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.Store.GetFolderByID(id) == nil {
		handleError(w, r, errors.NewNotFoundError("folder", id))
		return
	}
	writeJSON(w, r, http.StatusOK, s.Store.GetDecksInFolder(id))
}

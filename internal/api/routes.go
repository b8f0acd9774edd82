package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/summary", s.handleSummary)

		r.Route("/folders", func(r chi.Router) {
			r.Get("/", s.handleListFolders)
			r.Post("/", s.handleCreateFolder)
			r.Get("/{id}", s.handleGetFolder)
			r.Get("/{id}/decks", s.handleFolderDecks)
		})

		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleStandaloneDecks)
			r.Post("/", s.handleCreateDeck)
			r.Get("/archived", s.handleArchivedDecks)
			r.Get("/{id}", s.handleGetDeck)
			r.Put("/{id}", s.handleUpdateDeck)
			r.Delete("/{id}", s.handleDeleteDeck)
			r.Post("/{id}/archive", s.handleArchiveDeck)
			r.Post("/{id}/unarchive", s.handleUnarchiveDeck)
			r.Post("/{id}/rename", s.handleRenameDeck)
			r.Get("/{id}/cards", s.handleDeckCards)
			r.Get("/{id}/groups", s.handleDeckGroups)
			r.Post("/{id}/review", s.handleStartReview)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Post("/", s.handleCreateCard)
			r.Get("/{id}", s.handleGetCard)
			r.Post("/{id}/difficulty", s.handleUpdateDifficulty)
		})

		r.Route("/reviews/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetReview)
			r.Delete("/", s.handleEndReview)
			r.Post("/rate", s.handleRateReview)
			r.Post("/next", s.handleNextReview)
			r.Post("/skip", s.handleNextReview)
			r.Post("/previous", s.handlePreviousReview)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, errNoRoute(r))
	})
	return r
}

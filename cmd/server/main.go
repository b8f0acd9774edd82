package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/flashdeck/internal/api"
	"github.com/vytor/flashdeck/internal/config"
	"github.com/vytor/flashdeck/internal/db"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/jobs"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/repository/filestore"
	"github.com/vytor/flashdeck/internal/repository/memory"
	"github.com/vytor/flashdeck/internal/repository/sqlite"
	"github.com/vytor/flashdeck/internal/seed"
	"github.com/vytor/flashdeck/internal/services"
	"github.com/vytor/flashdeck/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("flashdeck starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("storage_backend=%s", cfg.StorageBackend)
	log.Debug("storage_key=%s", cfg.StorageKey)
	log.Debug("seed_sample=%t", cfg.SeedSample)
	log.Debug("cors_origins=%v", cfg.CORSOrigins)
	log.Debug("flush_retry_attempts=%d", cfg.FlushRetryAttempts)
	log.Debug("flush_retry_backoff=%s", cfg.FlushRetryBackoff)

	repo, closeRepo, err := openRepository(cfg)
	if err != nil {
		log.Error("failed to open storage: %v", err)
		os.Exit(1)
	}
	defer closeRepo()

	ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), log))
	defer cancel()

	// flushQueue is set after hydration; failed writes before that are not retried.
	var flushQueue jobs.FlushQueue
	pool := worker.NewPool(1, 4)
	store := flashcard.New(repo,
		flashcard.WithKey(cfg.StorageKey),
		flashcard.WithFlushFailureHandler(func(error) {
			if flushQueue != nil && cfg.FlushRetryAttempts > 0 {
				if err := flushQueue.EnqueueFlush(); err != nil {
					log.Warn("could not schedule flush retry: %v", err)
				}
			}
		}),
	)
	if err := seed.Hydrate(ctx, store, cfg.SeedSample); err != nil {
		log.Error("failed to load flashcards: %v", err)
		os.Exit(1)
	}
	summary := store.Summary()
	log.Info("library ready: active_decks=%d, archived_decks=%d, cards=%d",
		summary.ActiveDecks, summary.ArchivedDecks, len(store.Snapshot().Cards))

	flushQueue = jobs.NewWorkerQueue(pool, store, cfg.FlushRetryAttempts, cfg.FlushRetryBackoff)
	pool.Start(ctx)

	srv := &api.Server{
		Store:       store,
		Reviews:     services.NewReviewService(store, nil),
		CORSOrigins: cfg.CORSOrigins,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	log.Info("received signal %v, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}
	pool.Stop()

	// A mutation whose flush failed is still only in memory; give it one more try.
	if err := store.Flush(shutdownCtx); err != nil {
		log.Error("final flush failed: %v", err)
	}
	log.Info("flashdeck stopped")
}

// openRepository builds the storage backend named by cfg.StorageBackend. The
// returned func releases it.
func openRepository(cfg config.Config) (repository.DocumentRepository, func(), error) {
	log := logger.Default().WithPrefix("storage")

	switch cfg.StorageBackend {
	case config.BackendMemory:
		log.Warn("using in-memory storage, data is lost on exit")
		repo := memory.NewDocumentRepository(cfg.StorageQuotaBytes)
		return repo, func() { _ = repo.Close() }, nil

	case config.BackendFile:
		repo, err := filestore.NewDocumentRepository(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using file storage in %s", cfg.DataDir)
		return repo, func() { _ = repo.Close() }, nil

	case config.BackendSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		repo := sqlite.NewDocumentRepository(database.DB)
		return repo, func() {
			_ = repo.Close()
			log.Debug("closing database connection")
			if err := database.Close(); err != nil {
				log.Error("failed to close database: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

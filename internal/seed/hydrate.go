package seed

import (
	"context"
	"time"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/flashcard"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
)

// Hydrate loads the stored document into store. A missing document is
// replaced by the sample library when withSample is set, or by an empty one.
// A malformed document is logged and replaced by an empty one. Read failures
// are returned.
func Hydrate(ctx context.Context, store *flashcard.Store, withSample bool) error {
	log := logger.FromContext(ctx).WithPrefix("seed")

	err := store.Load(ctx)
	switch {
	case err == nil:
		return nil
	case errors.IsNotFound(err):
		if withSample {
			log.Info("no stored document, seeding sample library")
			return store.Seed(ctx, Sample(time.Now()))
		}
		log.Info("no stored document, starting empty")
		return store.Seed(ctx, models.EmptyDocument())
	case errors.IsParse(err):
		log.Warn("stored document under %s is unreadable, resetting to empty: %v", store.Key(), err)
		return store.Seed(ctx, models.EmptyDocument())
	default:
		return err
	}
}

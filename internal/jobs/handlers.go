package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/briangreenhill/pokedex/internal/catalog"
	"github.com/briangreenhill/pokedex/internal/favorites"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

type NameLookup interface {
	LookupName(ctx context.Context, id int) (string, error)
}

type NameSetter interface {
	SetName(ctx context.Context, id int, name string) error
}

// NewResolveNameHandler fills in the name of a favorite added without one.
// Rate limits and upstream failures are retried; an unknown entity is not.
func NewResolveNameHandler(lookup NameLookup, store NameSetter, log zerolog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p ResolveFavoriteNamePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("bad payload")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		start := time.Now()
		name, err := lookup.LookupName(ctx, p.ID)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrInvalidArgument) {
				log.Warn().Int("id", p.ID).Err(err).Msg("favorite name unresolvable, dropping job")
				return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
			}
			log.Warn().Int("id", p.ID).Dur("duration", time.Since(start)).Err(err).Msg("favorite name lookup failed, will retry")
			return err
		}

		if err := store.SetName(ctx, p.ID, name); err != nil {
			if errors.Is(err, favorites.ErrNotFound) {
				log.Info().Int("id", p.ID).Msg("favorite removed before its name resolved")
				return nil
			}
			return err
		}

		log.Info().Int("id", p.ID).Str("name", name).Dur("duration", time.Since(start)).Msg("favorite name resolved")
		return nil
	}
}

// RetryDelay waits for the upstream's Retry-After hint when there is one and
// falls back to asynq's exponential backoff otherwise.
func RetryDelay(n int, err error, t *asynq.Task) time.Duration {
	if d := catalog.RetryAfter(err); d > 0 {
		return d
	}
	return asynq.DefaultRetryDelayFunc(n, err, t)
}

// NewServeMux routes every task type to its handler
func NewServeMux(lookup NameLookup, store NameSetter, log zerolog.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TaskResolveFavoriteName, NewResolveNameHandler(lookup, store, log))
	return mux
}

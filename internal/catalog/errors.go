package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/briangreenhill/pokedex/internal/metrics"
	"github.com/briangreenhill/pokedex/pokeapi"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrFailure         = errors.New("upstream failure")
	ErrInvalidArgument = errors.New("invalid argument")
)

// mandatory maps the failure of a resource the aggregation cannot do without
// to the catalog error taxonomy. The upstream error stays in the chain.
func mandatory(err error) error {
	switch pokeapi.OutcomeOf(err) {
	case pokeapi.OutcomeNotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case pokeapi.OutcomeRateLimited:
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	default:
		return fmt.Errorf("%w: %w", ErrFailure, err)
	}
}

// RetryAfter returns the upstream backoff hint carried by err, or zero
func RetryAfter(err error) time.Duration {
	var apiErr *pokeapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter
	}
	return 0
}

// degraded records an optional sub-fetch that was replaced by a fallback
func degraded(log zerolog.Logger, component, key string, err error) {
	outcome := pokeapi.OutcomeOf(err).String()
	metrics.DegradedResults.WithLabelValues(component, outcome).Inc()
	log.Warn().
		Str("component", component).
		Str("key", key).
		Str("outcome", outcome).
		Err(err).
		Msg("degraded sub-fetch")
}

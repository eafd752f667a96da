package pokeapi

import (
	"errors"
	"fmt"
	"time"
)

// Outcome classifies a single upstream request
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeRateLimited
	OutcomeUpstreamError
	OutcomeNetworkFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeRateLimited:
		return "rate_limited"
	case OutcomeUpstreamError:
		return "upstream_error"
	case OutcomeNetworkFailure:
		return "network_failure"
	default:
		return "unknown"
	}
}

var (
	ErrNotFound    = errors.New("pokeapi: not found")
	ErrRateLimited = errors.New("pokeapi: rate limited")
	ErrUpstream    = errors.New("pokeapi: upstream error")
	ErrNetwork     = errors.New("pokeapi: network failure")
)

// Error is the only error type returned by Client. Transport errors are
// wrapped, never returned bare.
type Error struct {
	Outcome    Outcome
	URL        string
	StatusCode int           // zero for network failures
	RetryAfter time.Duration // set for rate-limited responses when the server sent a hint
	Err        error
}

func (e *Error) Error() string {
	switch e.Outcome {
	case OutcomeNetworkFailure:
		return fmt.Sprintf("GET %s: %s: %v", e.URL, e.Outcome, e.Err)
	case OutcomeUpstreamError:
		if e.Err != nil {
			return fmt.Sprintf("GET %s: %s (status %d): %v", e.URL, e.Outcome, e.StatusCode, e.Err)
		}
		return fmt.Sprintf("GET %s: %s (status %d)", e.URL, e.Outcome, e.StatusCode)
	default:
		return fmt.Sprintf("GET %s: %s", e.URL, e.Outcome)
	}
}

// Is matches the sentinel for the error's outcome
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Outcome == OutcomeNotFound
	case ErrRateLimited:
		return e.Outcome == OutcomeRateLimited
	case ErrUpstream:
		return e.Outcome == OutcomeUpstreamError
	case ErrNetwork:
		return e.Outcome == OutcomeNetworkFailure
	}
	return false
}

func (e *Error) Unwrap() error { return e.Err }

// OutcomeOf returns the outcome carried by err. A nil error is OK and an
// error from outside this package is a network failure.
func OutcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Outcome
	}
	return OutcomeNetworkFailure
}

// Package pokeapi is a thin client for the public PokeAPI. Every request is
// classified into exactly one Outcome and responses are decoded into typed
// resources at this boundary.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/briangreenhill/pokedex/internal/metrics"
)

const (
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "pokedex/1.0"
)

type Client struct {
	http      *http.Client
	baseURL   *url.URL
	timeout   time.Duration
	userAgent string
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithTimeout bounds every single request, including reading the body.
// A non-positive value disables the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func New(opts ...Option) *Client {
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:      http.DefaultClient,
		baseURL:   u,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the API root the client was configured with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// endpoint resolves p against the base URL
func (c *Client) endpoint(p string, q map[string]string) string {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p) + "/"
	qq := u.Query()
	for k, v := range q {
		qq.Set(k, v)
	}
	u.RawQuery = qq.Encode()
	return u.String()
}

// PokemonURL is the canonical resource URL of the entity with the given id
func (c *Client) PokemonURL(id int) string {
	return c.endpoint("pokemon/"+strconv.Itoa(id), nil)
}

// Fetch issues one GET and returns the raw body. Any failure is a *Error.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()
	body, err := c.fetch(ctx, rawURL)
	outcome := OutcomeOf(err).String()
	metrics.UpstreamRequests.WithLabelValues(outcome).Inc()
	metrics.UpstreamLatency.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	return body, err
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Outcome: OutcomeNetworkFailure, URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Outcome: OutcomeNetworkFailure, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &Error{Outcome: OutcomeNotFound, URL: rawURL, StatusCode: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &Error{
			Outcome:    OutcomeRateLimited,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &Error{Outcome: OutcomeNetworkFailure, URL: rawURL, StatusCode: resp.StatusCode, Err: err}
		}
		return body, nil
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		var detail error
		if msg := strings.TrimSpace(string(b)); msg != "" {
			detail = errors.New(msg)
		}
		return nil, &Error{Outcome: OutcomeUpstreamError, URL: rawURL, StatusCode: resp.StatusCode, Err: detail}
	}
}

// parseRetryAfter accepts both forms of the header: delay-seconds and HTTP-date
func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}

// getJSON fetches rawURL and decodes it into T. A 2xx body that does not
// decode is reported as an upstream error.
func getJSON[T any](ctx context.Context, c *Client, rawURL string) (*T, error) {
	body, err := c.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{Outcome: OutcomeUpstreamError, URL: rawURL, StatusCode: http.StatusOK, Err: fmt.Errorf("decode: %w", err)}
	}
	return &out, nil
}

// Pokemon fetches the primary entity resource
func (c *Client) Pokemon(ctx context.Context, id int) (*Pokemon, error) {
	return getJSON[Pokemon](ctx, c, c.PokemonURL(id))
}

// PokemonPage fetches one page of the entity index
func (c *Client) PokemonPage(ctx context.Context, offset, limit int) (*Page, error) {
	return getJSON[Page](ctx, c, c.endpoint("pokemon", map[string]string{
		"offset": strconv.Itoa(offset),
		"limit":  strconv.Itoa(limit),
	}))
}

// Species fetches a species by the URL referenced from an entity
func (c *Client) Species(ctx context.Context, rawURL string) (*Species, error) {
	return getJSON[Species](ctx, c, rawURL)
}

// Ability fetches an ability by the URL referenced from an entity
func (c *Client) Ability(ctx context.Context, rawURL string) (*Ability, error) {
	return getJSON[Ability](ctx, c, rawURL)
}

// EvolutionChain fetches a chain by the URL referenced from a species
func (c *Client) EvolutionChain(ctx context.Context, rawURL string) (*EvolutionChain, error) {
	return getJSON[EvolutionChain](ctx, c, rawURL)
}

package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mizrakjian/monkeystats/internal/config"
)

// Client talks to the Monkeytype REST API on behalf of one user.
type Client struct {
	baseURL string
	apiKey  string
	user    string
	httpc   *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithLogger sets the logger used for request timing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func New(cfg config.Config, opts ...Option) *Client {
	c := &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		user:    cfg.User,
		httpc:   &http.Client{Timeout: 15 * time.Second},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Profile retrieves the user's profile, including personal bests.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var p Profile
	err := c.fetch(ctx, "/users/"+url.PathEscape(c.user)+"/profile", &p)
	return p, err
}

// Streak retrieves the user's streak information.
func (c *Client) Streak(ctx context.Context) (Streak, error) {
	var s Streak
	err := c.fetch(ctx, "/users/streak", &s)
	return s, err
}

// Activity retrieves the user's daily test-count series.
func (c *Client) Activity(ctx context.Context) (Activity, error) {
	var a Activity
	err := c.fetch(ctx, "/users/currentTestActivity", &a)
	return a, err
}

// LastTest retrieves the user's most recent test result.
func (c *Client) LastTest(ctx context.Context) (LastTest, error) {
	var t LastTest
	err := c.fetch(ctx, "/results/last", &t)
	return t, err
}

// fetch performs an authenticated GET and decodes the response's
// "data" envelope into out.
func (c *Client) fetch(ctx context.Context, endpoint string, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("endpoint", endpoint))
	}
	req.Header.Set("Authorization", "ApeKey "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request failed", goerr.V("endpoint", endpoint))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return goerr.New("unexpected response status",
			goerr.V("endpoint", endpoint),
			goerr.V("status", resp.StatusCode),
		)
	}

	var envelope struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return goerr.Wrap(err, "failed to decode response", goerr.V("endpoint", endpoint))
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return goerr.Wrap(err, "failed to decode payload", goerr.V("endpoint", endpoint))
	}

	c.logger.Debug("fetched resource",
		"endpoint", endpoint,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

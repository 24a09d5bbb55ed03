// Package github is a small read-only client for the parts of the GitHub REST
// API this application uses: user search, user profile, and a user's
// repositories.
//
// GitHub API docs:
//   - https://docs.github.com/en/rest/search/search#search-users
//   - https://docs.github.com/en/rest/users/users#get-a-user
//   - https://docs.github.com/en/rest/repos/repos#list-repositories-for-a-user
//
// Every call takes a context.Context. When a newer request supersedes an
// older one, the service cancels the older context and the in-flight HTTP
// request is aborted here.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/hamzaabialal/github-clone/internal/apperror"
	"github.com/hamzaabialal/github-clone/internal/metrics"
	"github.com/hamzaabialal/github-clone/internal/model"
)

// Page sizes are fixed: the UI has no pagination.
const (
	SearchPageSize = 20
	ReposPageSize  = 30
)

// DefaultBaseURL is the public GitHub REST API.
const DefaultBaseURL = "https://api.github.com"

// API is the subset of GitHub the services depend on.
// The services take this interface so tests can swap in a fake.
type API interface {
	SearchUsers(ctx context.Context, q string) ([]model.UserSummary, error)
	GetUser(ctx context.Context, login string) (*model.UserProfile, error)
	ListRepos(ctx context.Context, login string) ([]model.Repository, error)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	// Token is an optional personal access token. With a token GitHub allows
	// 5000 requests/hour instead of 60.
	Token   string
	Timeout time.Duration
	RPS     float64
	Burst   int
}

// Client talks to the GitHub REST API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// compile-time check that *Client implements API
var _ API = (*Client)(nil)

// NewClient creates a Client.
//
// AUTHENTICATION:
// When a token is configured we build the *http.Client with oauth2.NewClient
// and a static token source. It returns a client whose transport adds the
// "Authorization: Bearer <token>" header to every request, the same thing
// oauth2.Config.Client does after a login exchange. Without a token we use a
// plain client and GitHub treats us as anonymous.
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RPS <= 0 {
		opts.RPS = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 10
	}

	httpClient := &http.Client{}
	if opts.Token != "" {
		httpClient = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		))
	}
	httpClient.Timeout = opts.Timeout

	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		logger:     logger,
	}
}

// StatusError is returned when GitHub answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("github: %s returned status %d", e.Endpoint, e.StatusCode)
}

// SearchUsers runs one user search. q must already be encoded, normally by
// BuildSearchQuery; it is placed into the URL verbatim.
func (c *Client) SearchUsers(ctx context.Context, q string) ([]model.UserSummary, error) {
	u := fmt.Sprintf("%s/search/users?q=%s&per_page=%d", c.baseURL, q, SearchPageSize)

	var body searchUsersResponse
	if err := c.getJSON(ctx, "search_users", u, &body); err != nil {
		return nil, err
	}

	users := make([]model.UserSummary, 0, len(body.Items))
	for _, it := range body.Items {
		users = append(users, it.toModel())
	}
	return users, nil
}

// GetUser fetches one profile. A 404 becomes apperror.ErrNotFound so the
// caller can tell "no such user" apart from "GitHub is down".
func (c *Client) GetUser(ctx context.Context, login string) (*model.UserProfile, error) {
	u := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(login))

	var body userResponse
	if err := c.getJSON(ctx, "get_user", u, &body); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, apperror.NotFound("user", login)
		}
		return nil, err
	}

	if body.ID == 0 {
		return nil, fmt.Errorf("github: invalid user record for %q (ID = 0)", login)
	}

	p := body.toModel()
	return &p, nil
}

// ListRepos fetches a user's repositories, most recently updated first.
func (c *Client) ListRepos(ctx context.Context, login string) ([]model.Repository, error) {
	u := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=%d", c.baseURL, url.PathEscape(login), ReposPageSize)

	var body []repoResponse
	if err := c.getJSON(ctx, "list_repos", u, &body); err != nil {
		return nil, err
	}

	repos := make([]model.Repository, 0, len(body))
	for _, r := range body {
		repos = append(repos, r.toModel())
	}
	return repos, nil
}

// getJSON performs a rate-limited GET and decodes the JSON body into out.
// Non-2xx responses return a *StatusError without reading the body.
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("github: %s: waiting for rate limiter: %w", endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("github: %s: building request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveUpstream(endpoint, 0, start)
		return fmt.Errorf("github: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream(endpoint, resp.StatusCode, start)

	c.logger.Debug("github request",
		slog.String("endpoint", endpoint),
		slog.String("url", rawURL),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("rateRemaining", resp.Header.Get("X-RateLimit-Remaining")),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github: %s: decoding response: %w", endpoint, err)
	}
	return nil
}

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/devconnect/backend/internal/config"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when the upstream reports no such user.
var ErrNotFound = errors.New("github user not found")

// Repo is the subset of the GitHub repository payload exposed to clients.
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	FullName        string `json:"full_name"`
	HTMLURL         string `json:"html_url"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	WatchersCount   int    `json:"watchers_count"`
	ForksCount      int    `json:"forks_count"`
	CreatedAt       string `json:"created_at"`
}

// Client handles integration with the GitHub repository-listing API
type Client struct {
	url          string
	clientID     string
	clientSecret string
	client       *http.Client
	log          *logrus.Logger
}

// NewClient initializes a new GitHub client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url:          cfg.GithubAPIURL,
		clientID:     cfg.GithubClientID,
		clientSecret: cfg.GithubClientSecret,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// ReposByUsername lists a user's five most recent repositories. A remote
// 404 is reported as ErrNotFound.
func (c *Client) ReposByUsername(ctx context.Context, username string) ([]Repo, error) {
	uri := fmt.Sprintf("%s/users/%s/repos", c.url, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	if c.clientID != "" && c.clientSecret != "" {
		q.Set("client_id", c.clientID)
		q.Set("client_secret", c.clientSecret)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "devconnect-api")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.log.Debugf("Fetched %d GitHub repos for %s", len(repos), username)
	return repos, nil
}

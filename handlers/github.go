package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrLookupNotFound covers any failed GitHub lookup: transport errors and
// non-200 responses alike.
var ErrLookupNotFound = errors.New("github profile not found")

// GithubClient issues the single outbound request for a user's repositories.
// No retry, no caching.
type GithubClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewGithubClient(baseURL, token string) *GithubClient {
	return &GithubClient{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{},
	}
}

// Repos fetches the five most recently created repositories for a username
// and returns the response body untouched.
func (g *GithubClient) Repos(ctx context.Context, username string) ([]byte, error) {
	url := g.BaseURL + "/users/" + username + "/repos?per_page=5&sort=created:asc"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if g.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.Token)
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, ErrLookupNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrLookupNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrLookupNotFound
	}
	return body, nil
}

// GithubRepos proxies the lookup, relaying the GitHub response verbatim.
func (h *Handler) GithubRepos(c *gin.Context) {
	body, err := h.Github.Repos(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "No Github profile found"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

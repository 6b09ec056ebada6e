package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGithubReposRelaysBody(t *testing.T) {
	const payload = `[{"name":"analytical-engine","stargazers_count":42}]`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/ada/repos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer ts.Close()

	e := newEnvWithGithub(t, ts.URL)

	w := e.do(t, http.MethodGet, "/api/profile/github/ada", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, payload, w.Body.String())
}

func TestGithubReposNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	e := newEnvWithGithub(t, ts.URL)

	w := e.do(t, http.MethodGet, "/api/profile/github/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No Github profile found")
}

func TestGithubReposTransportError(t *testing.T) {
	// The default env points at an unroutable address.
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/profile/github/ada", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No Github profile found")
}

package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"devconnect/config"
	"devconnect/handlers"
	"devconnect/routes"
	"devconnect/store"
)

type env struct {
	store  *store.Store
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	return newEnvWithGithub(t, "http://127.0.0.1:1")
}

func newEnvWithGithub(t *testing.T, githubURL string) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &config.Config{
		Env:                "development",
		JWTSecret:          "test-secret",
		JWTTTL:             time.Hour,
		GithubAPIURL:       githubURL,
		CORSAllowedOrigins: "http://localhost:3000",
	}

	st := store.NewMemoryStore()
	h := handlers.New(st, logger, cfg, handlers.NewGithubClient(cfg.GithubAPIURL, ""))

	return &env{store: st, router: routes.SetupRouter(h, cfg)}
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns their token.
func (e *env) register(t *testing.T, name, email string) string {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

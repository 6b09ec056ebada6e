package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Ada Lovelace", "ada@example.com")

	w := e.do(t, http.MethodPost, "/api/auth", "", gin.H{
		"email":    "ada@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestLoginInvalidCredentials(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Ada Lovelace", "ada@example.com")

	for _, body := range []gin.H{
		{"email": "ada@example.com", "password": "wrongpass"},
		{"email": "nobody@example.com", "password": "password123"},
	} {
		w := e.do(t, http.MethodPost, "/api/auth", "", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid credentials")
	}
}

func TestGetAuthUserOmitsPassword(t *testing.T) {
	e := newEnv(t)
	token := e.register(t, "Ada Lovelace", "ada@example.com")

	w := e.do(t, http.MethodGet, "/api/auth", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody[map[string]any](t, w)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestAuthenticatedRoutesRejectMissingAndInvalidTokens(t *testing.T) {
	e := newEnv(t)

	// Missing token
	w := e.do(t, http.MethodPost, "/api/posts", "", gin.H{"text": "hello"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token")

	// Invalid token
	w = e.do(t, http.MethodPost, "/api/posts", "not-a-token", gin.H{"text": "hello"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid")

	// No side effects either way
	posts, err := e.store.Posts.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

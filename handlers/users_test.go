package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterReturnsToken(t *testing.T) {
	e := newEnv(t)

	token := e.register(t, "Ada Lovelace", "ada@example.com")
	assert.NotEmpty(t, token)

	user, err := e.store.Users.GetUserByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Contains(t, user.Avatar, "gravatar.com/avatar/")
	assert.NotEqual(t, "password123", user.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "Ada Lovelace", "ada@example.com")

	w := e.do(t, http.MethodPost, "/api/users", "", gin.H{
		"name":     "Someone Else",
		"email":    "ada@example.com",
		"password": "different456",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		body gin.H
		want string
	}{
		{"missing name", gin.H{"email": "a@b.com", "password": "secret123"}, "name is required"},
		{"bad email", gin.H{"name": "A", "email": "nope", "password": "secret123"}, "valid email"},
		{"short password", gin.H{"name": "A", "email": "a@b.com", "password": "abc"}, "at least 6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/api/users", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.want)
		})
	}
}

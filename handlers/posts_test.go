package handlers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnect/models"
)

func createPost(t *testing.T, e *env, token, text string) models.Post {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/posts", token, gin.H{"text": text})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody[models.Post](t, w)
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	e := newEnv(t)
	token := e.register(t, "Ada Lovelace", "ada@example.com")

	post := createPost(t, e, token, "hello world")
	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, "Ada Lovelace", post.Name)
	assert.Contains(t, post.Avatar, "gravatar.com")
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestGetPost(t *testing.T) {
	e := newEnv(t)
	token := e.register(t, "Ada Lovelace", "ada@example.com")
	post := createPost(t, e, token, "hello")

	w := e.do(t, http.MethodGet, "/api/posts/"+post.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/posts/ffffffffffffffffffffffff", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")

	w = e.do(t, http.MethodGet, "/api/posts/garbage", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "Ada Lovelace", "ada@example.com")
	other := e.register(t, "Charles Babbage", "charles@example.com")

	post := createPost(t, e, owner, "mine")

	w := e.do(t, http.MethodDelete, "/api/posts/"+post.ID.Hex(), other, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not authorized")

	// The post is untouched.
	_, err := e.store.Posts.GetPost(context.Background(), post.ID)
	require.NoError(t, err)

	w = e.do(t, http.MethodDelete, "/api/posts/"+post.ID.Hex(), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Post removed")
}

func TestLikeExclusivity(t *testing.T) {
	e := newEnv(t)
	token := e.register(t, "Ada Lovelace", "ada@example.com")
	post := createPost(t, e, token, "likeable")

	w := e.do(t, http.MethodPut, "/api/posts/like/"+post.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	likes := decodeBody[[]models.Like](t, w)
	require.Len(t, likes, 1)

	w = e.do(t, http.MethodPut, "/api/posts/like/"+post.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already liked")

	stored, err := e.store.Posts.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)
}

func TestLikesAreNewestFirst(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "Ada Lovelace", "ada@example.com")
	charles := e.register(t, "Charles Babbage", "charles@example.com")
	post := createPost(t, e, ada, "popular")

	w := e.do(t, http.MethodPut, "/api/posts/like/"+post.ID.Hex(), ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPut, "/api/posts/like/"+post.ID.Hex(), charles, nil)
	require.Equal(t, http.StatusOK, w.Code)

	likes := decodeBody[[]models.Like](t, w)
	require.Len(t, likes, 2)

	charlesUser, err := e.store.Users.GetUserByEmail(context.Background(), "charles@example.com")
	require.NoError(t, err)
	assert.Equal(t, charlesUser.ID, likes[0].UserID)
}

func TestUnlike(t *testing.T) {
	e := newEnv(t)
	token := e.register(t, "Ada Lovelace", "ada@example.com")
	post := createPost(t, e, token, "fleeting")

	w := e.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID.Hex(), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not yet been liked")

	w = e.do(t, http.MethodPut, "/api/posts/like/"+post.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodPut, "/api/posts/unlike/"+post.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody[[]models.Like](t, w))
}

func TestCommentAndUncomment(t *testing.T) {
	e := newEnv(t)
	ada := e.register(t, "Ada Lovelace", "ada@example.com")
	charles := e.register(t, "Charles Babbage", "charles@example.com")
	post := createPost(t, e, ada, "discuss")

	w := e.do(t, http.MethodPut, "/api/posts/comment/"+post.ID.Hex(), ada, gin.H{"text": "first"})
	require.Equal(t, http.StatusOK, w.Code)
	w = e.do(t, http.MethodPut, "/api/posts/comment/"+post.ID.Hex(), charles, gin.H{"text": "second"})
	require.Equal(t, http.StatusOK, w.Code)

	comments := decodeBody[[]models.Comment](t, w)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "Charles Babbage", comments[0].Name)
	assert.Equal(t, "first", comments[1].Text)

	// Unknown comment id.
	w = e.do(t, http.MethodDelete, "/api/posts/uncomment/"+post.ID.Hex()+"/ffffffffffffffffffffffff", ada, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Comment does not exist")

	// Only the comment's author may remove it.
	w = e.do(t, http.MethodDelete, "/api/posts/uncomment/"+post.ID.Hex()+"/"+comments[0].ID.Hex(), ada, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Removal targets the matched comment, even when the author commented earlier too.
	w = e.do(t, http.MethodDelete, "/api/posts/uncomment/"+post.ID.Hex()+"/"+comments[0].ID.Hex(), charles, nil)
	require.Equal(t, http.StatusOK, w.Code)
	remaining := decodeBody[[]models.Comment](t, w)
	require.Len(t, remaining, 1)
	assert.Equal(t, "first", remaining[0].Text)
}

func TestCommentValidation(t *testing.T) {
	e := newEnv(t)
	token := e.register(t, "Ada Lovelace", "ada@example.com")
	post := createPost(t, e, token, "discuss")

	w := e.do(t, http.MethodPut, "/api/posts/comment/"+post.ID.Hex(), token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text is required")
}

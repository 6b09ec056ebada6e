package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/models"
	"devconnect/store"
)

type createPostRequest struct {
	Text string `json:"text" binding:"required"`
}

// CreatePost creates a post carrying a snapshot of the author's name and
// avatar taken now.
func (h *Handler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Store.Users.GetUserByID(ctx, userID)
	if err != nil {
		h.serverError(c, "posts.author", err)
		return
	}

	post := models.Post{
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	if err := h.Store.Posts.CreatePost(ctx, &post); err != nil {
		h.serverError(c, "posts.create", err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// ListPosts returns all posts, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Store.Posts.ListPosts(ctx)
	if err != nil {
		h.serverError(c, "posts.list", err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

// loadPost resolves the :id param. A malformed id and a missing post are the
// same condition to the client.
func (h *Handler) loadPost(c *gin.Context) (*models.Post, bool) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post not found"})
		return nil, false
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	post, err := h.Store.Posts.GetPost(ctx, postID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post not found"})
		return nil, false
	}
	if err != nil {
		h.serverError(c, "posts.load", err)
		return nil, false
	}
	return post, true
}

// GetPost returns a single post.
func (h *Handler) GetPost(c *gin.Context) {
	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost removes a post. Only its owner may delete it.
func (h *Handler) DeletePost(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	post, ok := h.loadPost(c)
	if !ok {
		return
	}
	if !h.requireOwner(c, userID, post.UserID) {
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Posts.DeletePost(ctx, post.ID); err != nil {
		h.serverError(c, "posts.delete", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// LikePost adds a like for the caller. A post holds at most one like per
// identity.
func (h *Handler) LikePost(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	for _, like := range post.Likes {
		if like.UserID == userID {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
			return
		}
	}

	post.Likes = append([]models.Like{{ID: primitive.NewObjectID(), UserID: userID}}, post.Likes...)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Posts.SavePost(ctx, post); err != nil {
		h.serverError(c, "posts.like", err)
		return
	}

	c.JSON(http.StatusOK, post.Likes)
}

// UnlikePost removes the caller's like.
func (h *Handler) UnlikePost(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	idx := -1
	for i, like := range post.Likes {
		if like.UserID == userID {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Post has not yet been liked"})
		return
	}

	post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Posts.SavePost(ctx, post); err != nil {
		h.serverError(c, "posts.unlike", err)
		return
	}

	c.JSON(http.StatusOK, post.Likes)
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentPost prepends a comment carrying the commenter's name and avatar
// snapshot.
func (h *Handler) CommentPost(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Store.Users.GetUserByID(ctx, userID)
	if err != nil {
		h.serverError(c, "comments.author", err)
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Text:      req.Text,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: time.Now().Unix(),
	}
	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := h.Store.Posts.SavePost(ctx, post); err != nil {
		h.serverError(c, "comments.save", err)
		return
	}

	c.JSON(http.StatusOK, post.Comments)
}

// UncommentPost removes a comment by its own id. Only the comment's author
// may remove it. Removal targets the matched comment, not the caller's
// first comment.
func (h *Handler) UncommentPost(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	post, ok := h.loadPost(c)
	if !ok {
		return
	}

	idx := -1
	for i, comment := range post.Comments {
		if comment.ID.Hex() == c.Param("commentId") {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Comment does not exist"})
		return
	}
	if !h.requireOwner(c, userID, post.Comments[idx].UserID) {
		return
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Posts.SavePost(ctx, post); err != nil {
		h.serverError(c, "comments.delete", err)
		return
	}

	c.JSON(http.StatusOK, post.Comments)
}

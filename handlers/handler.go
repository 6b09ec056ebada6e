package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/config"
	"devconnect/middleware"
	"devconnect/store"
)

const requestTimeout = 10 * time.Second

// Handler carries the dependencies shared by all HTTP handlers.
type Handler struct {
	Store  *store.Store
	Logger *logrus.Logger
	Cfg    *config.Config
	Github *GithubClient
}

func New(st *store.Store, logger *logrus.Logger, cfg *config.Config, github *GithubClient) *Handler {
	return &Handler{Store: st, Logger: logger, Cfg: cfg, Github: github}
}

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// currentUserID parses the identity claim the auth middleware stored in the
// context. Handlers behind the middleware can rely on it being present.
func currentUserID(c *gin.Context) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserIDKey))
}

// isOwner is the single ownership predicate: a resource may only be mutated
// by the identity its owner reference points at.
func isOwner(claimed, owner primitive.ObjectID) bool {
	return claimed == owner
}

// requireOwner aborts with NotAuthorized when the claimed identity does not
// own the resource. Returns true when the caller may proceed.
func (h *Handler) requireOwner(c *gin.Context, claimed, owner primitive.ObjectID) bool {
	if !isOwner(claimed, owner) {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
		return false
	}
	return true
}

// serverError logs the storage failure with its request id and returns a
// generic message, never the internal detail.
func (h *Handler) serverError(c *gin.Context, op string, err error) {
	h.Logger.WithFields(logrus.Fields{
		"op":         op,
		"request_id": c.GetString("request_id"),
	}).WithError(err).Error("store failure")
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"devconnect/store"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a signed token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Store.Users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, validationError("Invalid credentials", ""))
		return
	}
	if err != nil {
		h.serverError(c, "login.lookup", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, validationError("Invalid credentials", ""))
		return
	}

	token, err := signToken(user.ID.Hex(), h.Cfg.JWTSecret, h.Cfg.JWTTTL)
	if err != nil {
		h.serverError(c, "login.token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GetAuthUser returns the authenticated user, password omitted.
func (h *Handler) GetAuthUser(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Store.Users.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "User not found"})
		return
	}
	if err != nil {
		h.serverError(c, "auth.lookup", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

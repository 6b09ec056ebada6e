package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"devconnect/models"
	"devconnect/store"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register creates a new user and returns a signed token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Store.Users.GetUserByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusBadRequest, validationError("User already exists", "email"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.serverError(c, "register.lookup", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.serverError(c, "register.hash", err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Avatar:   gravatarURL(req.Email),
	}
	if err := h.Store.Users.CreateUser(ctx, &user); err != nil {
		// The unique index closes the race between the lookup and the insert.
		if errors.Is(err, store.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, validationError("User already exists", "email"))
			return
		}
		h.serverError(c, "register.create", err)
		return
	}

	token, err := signToken(user.ID.Hex(), h.Cfg.JWTSecret, h.Cfg.JWTTTL)
	if err != nil {
		h.serverError(c, "register.token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"devconnect/models"
	"devconnect/store"
)

type profileRequest struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Status         string `json:"status" binding:"required"`
	Skills         string `json:"skills" binding:"required"`
	Bio            string `json:"bio"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

// parseSkills splits the comma-delimited skills input, trims whitespace and
// drops empty elements.
func parseSkills(input string) []string {
	parts := strings.Split(input, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

// buildProfileFields constructs the sparse field set from the supplied
// values. Empty fields stay nil and therefore preserve stored values; the
// social links object is rebuilt from the supplied keys on every call.
func buildProfileFields(req profileRequest) store.ProfileFields {
	fields := store.ProfileFields{
		Status: &req.Status,
		Skills: parseSkills(req.Skills),
		Social: &models.Social{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Facebook:  req.Facebook,
			Linkedin:  req.Linkedin,
			Instagram: req.Instagram,
		},
	}
	if req.Company != "" {
		fields.Company = &req.Company
	}
	if req.Website != "" {
		fields.Website = &req.Website
	}
	if req.Location != "" {
		fields.Location = &req.Location
	}
	if req.Bio != "" {
		fields.Bio = &req.Bio
	}
	if req.GithubUsername != "" {
		fields.GithubUsername = &req.GithubUsername
	}
	return fields
}

// UpsertProfile creates the caller's profile on first use and partially
// updates it afterwards. At most one profile exists per user.
func (h *Handler) UpsertProfile(c *gin.Context) {
	var req profileRequest
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

	profile, err := h.Store.Profiles.UpsertProfile(ctx, userID, buildProfileFields(req))
	if err != nil {
		h.serverError(c, "profile.upsert", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetMyProfile returns the caller's profile with the owner's name and avatar.
func (h *Handler) GetMyProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Store.Profiles.GetProfileByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
		return
	}
	if err != nil {
		h.serverError(c, "profile.me", err)
		return
	}

	c.JSON(http.StatusOK, h.withOwner(c, profile))
}

// ListProfiles returns all profiles, public.
func (h *Handler) ListProfiles(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	profiles, err := h.Store.Profiles.ListProfiles(ctx)
	if err != nil {
		h.serverError(c, "profile.list", err)
		return
	}

	out := make([]gin.H, 0, len(profiles))
	for i := range profiles {
		out = append(out, h.withOwner(c, &profiles[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetProfileByUser returns one user's profile, public. A malformed id and a
// missing profile are the same condition to the client.
func (h *Handler) GetProfileByUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Store.Profiles.GetProfileByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Profile not found"})
		return
	}
	if err != nil {
		h.serverError(c, "profile.get", err)
		return
	}

	c.JSON(http.StatusOK, h.withOwner(c, profile))
}

// withOwner attaches the owning user's name and avatar to a profile payload,
// the way the client expects populated responses.
func (h *Handler) withOwner(c *gin.Context, profile *models.Profile) gin.H {
	out := gin.H{
		"id":             profile.ID,
		"user":           profile.UserID,
		"company":        profile.Company,
		"website":        profile.Website,
		"location":       profile.Location,
		"status":         profile.Status,
		"skills":         profile.Skills,
		"bio":            profile.Bio,
		"githubusername": profile.GithubUsername,
		"social":         profile.Social,
		"experience":     profile.Experience,
		"education":      profile.Education,
		"createdAt":      profile.CreatedAt,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if user, err := h.Store.Users.GetUserByID(ctx, profile.UserID); err == nil {
		out["user"] = gin.H{"id": user.ID, "name": user.Name, "avatar": user.Avatar}
	}
	return out
}

// DeleteAccount removes the caller's posts, profile and user record. The
// three deletions are independent: a failure in one does not stop the rest.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	var failed error
	if err := h.Store.Posts.DeletePostsByUser(ctx, userID); err != nil {
		h.Logger.WithError(err).Error("cascade: posts deletion failed")
		failed = err
	}
	if err := h.Store.Profiles.DeleteProfileByUser(ctx, userID); err != nil {
		h.Logger.WithError(err).Error("cascade: profile deletion failed")
		failed = err
	}
	if err := h.Store.Users.DeleteUser(ctx, userID); err != nil {
		h.Logger.WithError(err).Error("cascade: user deletion failed")
		failed = err
	}
	if failed != nil {
		h.serverError(c, "profile.deleteAccount", failed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "User deleted"})
}

type experienceRequest struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location"`
	From        int64  `json:"from" binding:"required"`
	To          int64  `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// AddExperience prepends an experience entry, newest first.
func (h *Handler) AddExperience(c *gin.Context) {
	var req experienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}
	if req.To != 0 && req.From >= req.To {
		c.JSON(http.StatusBadRequest, validationError("From date must precede to date", "from"))
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Store.Profiles.GetProfileByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
		return
	}
	if err != nil {
		h.serverError(c, "experience.load", err)
		return
	}

	exp := models.Experience{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}
	profile.Experience = append([]models.Experience{exp}, profile.Experience...)

	if err := h.Store.Profiles.SaveProfile(ctx, profile); err != nil {
		h.serverError(c, "experience.save", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteExperience removes the entry whose id matches. An unmatched id
// leaves the sequence untouched.
func (h *Handler) DeleteExperience(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Store.Profiles.GetProfileByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
		return
	}
	if err != nil {
		h.serverError(c, "experience.load", err)
		return
	}

	for i, exp := range profile.Experience {
		if exp.ID.Hex() == c.Param("id") {
			profile.Experience = append(profile.Experience[:i], profile.Experience[i+1:]...)
			break
		}
	}

	if err := h.Store.Profiles.SaveProfile(ctx, profile); err != nil {
		h.serverError(c, "experience.save", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type educationRequest struct {
	School       string `json:"school" binding:"required"`
	Degree       string `json:"degree" binding:"required"`
	FieldOfStudy string `json:"fieldofstudy" binding:"required"`
	From         int64  `json:"from" binding:"required"`
	To           int64  `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// AddEducation prepends an education entry, newest first.
func (h *Handler) AddEducation(c *gin.Context) {
	var req educationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindingErrors(err))
		return
	}
	if req.To != 0 && req.From >= req.To {
		c.JSON(http.StatusBadRequest, validationError("From date must precede to date", "from"))
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Store.Profiles.GetProfileByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
		return
	}
	if err != nil {
		h.serverError(c, "education.load", err)
		return
	}

	edu := models.Education{
		ID:           primitive.NewObjectID(),
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}
	profile.Education = append([]models.Education{edu}, profile.Education...)

	if err := h.Store.Profiles.SaveProfile(ctx, profile); err != nil {
		h.serverError(c, "education.save", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// DeleteEducation removes the entry whose id matches. An unmatched id
// leaves the sequence untouched.
func (h *Handler) DeleteEducation(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	profile, err := h.Store.Profiles.GetProfileByUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "There is no profile for this user"})
		return
	}
	if err != nil {
		h.serverError(c, "education.load", err)
		return
	}

	for i, edu := range profile.Education {
		if edu.ID.Hex() == c.Param("id") {
			profile.Education = append(profile.Education[:i], profile.Education[i+1:]...)
			break
		}
	}

	if err := h.Store.Profiles.SaveProfile(ctx, profile); err != nil {
		h.serverError(c, "education.save", err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

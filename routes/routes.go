package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"devconnect/config"
	"devconnect/handlers"
	"devconnect/middleware"
)

// SetupRouter wires the full HTTP surface: public reads and credential
// endpoints, then the authenticated group behind the JWT middleware.
func SetupRouter(h *handlers.Handler, cfg *config.Config) *gin.Engine {
	handlers.InitValidation()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"msg": "API running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	limiter := middleware.NewIPRateLimiter(60, time.Minute)

	// Public routes
	router.POST("/api/users", middleware.RateLimitMiddleware(limiter), h.Register)
	router.POST("/api/auth", middleware.RateLimitMiddleware(limiter), h.Login)
	router.GET("/api/profile", h.ListProfiles)
	router.GET("/api/profile/user/:userId", h.GetProfileByUser)
	router.GET("/api/profile/github/:username", h.GithubRepos)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	protected.GET("/auth", h.GetAuthUser)

	protected.POST("/profile", h.UpsertProfile)
	protected.GET("/profile/me", h.GetMyProfile)
	protected.DELETE("/profile", h.DeleteAccount)
	protected.PUT("/profile/experience", h.AddExperience)
	protected.DELETE("/profile/experience/:id", h.DeleteExperience)
	protected.PUT("/profile/education", h.AddEducation)
	protected.DELETE("/profile/education/:id", h.DeleteEducation)

	protected.POST("/posts", h.CreatePost)
	protected.GET("/posts", h.ListPosts)
	protected.GET("/posts/:id", h.GetPost)
	protected.DELETE("/posts/:id", h.DeletePost)
	protected.PUT("/posts/like/:id", h.LikePost)
	protected.PUT("/posts/unlike/:id", h.UnlikePost)
	protected.PUT("/posts/comment/:id", h.CommentPost)
	protected.DELETE("/posts/uncomment/:id/:commentId", h.UncommentPost)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(404, gin.H{"msg": "Endpoint not found"})
			return
		}
		c.Next()
	})

	return router
}

package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
// Defaults are suitable for local development.
type Config struct {
	AppName string
	Env     string // development, production
	Port    string
	GinMode string

	// MongoDB
	MongoURI    string
	MongoDBName string

	// JWT
	JWTSecret string
	JWTTTL    time.Duration

	// GitHub repository lookup
	GithubAPIURL string
	GithubToken  string

	// CORS
	CORSAllowedOrigins string // comma-separated
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "devconnect"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		MongoURI:    getenv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDBName: getenv("MONGODB_NAME", "devconnect"),

		JWTSecret: getenv("JWT_SECRET", ""),
		JWTTTL:    getdur("JWT_TTL", 10*time.Hour),

		GithubAPIURL: getenv("GITHUB_API_URL", "https://api.github.com"),
		GithubToken:  getenv("GITHUB_TOKEN", ""),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}
}

// CORSOrigins returns the allowed origins as a slice.
func (c *Config) CORSOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

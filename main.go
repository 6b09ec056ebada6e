package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"devconnect/config"
	"devconnect/database"
	"devconnect/handlers"
	"devconnect/routes"
	"devconnect/store"
)

func newLogger(env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func connectWithRetry(cfg *config.Config, logger *logrus.Logger, attempts int) (*mongo.Client, *mongo.Database, error) {
	var (
		client *mongo.Client
		db     *mongo.Database
		err    error
	)
	for i := 1; i <= attempts; i++ {
		client, db, err = database.Connect(cfg.MongoURI, cfg.MongoDBName)
		if err == nil {
			return client, db, nil
		}
		logger.WithError(err).Warnf("MongoDB connection attempt %d failed", i)
		time.Sleep(2 * time.Second)
	}
	return nil, nil, err
}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := newLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be set")
	}

	gin.SetMode(cfg.GinMode)

	mc, db, err := connectWithRetry(cfg, logger, 3)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := database.Disconnect(mc); err != nil {
			logger.WithError(err).Error("mongo disconnect failed")
		}
	}()
	logger.Info("MongoDB connected")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	st := &store.Store{
		Users:    store.NewUserMongoStore(ctx, logger, db),
		Profiles: store.NewProfileMongoStore(ctx, logger, db),
		Posts:    store.NewPostMongoStore(db),
	}

	github := handlers.NewGithubClient(cfg.GithubAPIURL, cfg.GithubToken)
	h := handlers.New(st, logger, cfg, github)

	router := routes.SetupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("forced shutdown")
	}

	logger.Info("server stopped")
}

package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/flavourly/backend/config"
	"github.com/flavourly/backend/internal/api"
	"github.com/flavourly/backend/internal/database"
	"github.com/flavourly/backend/internal/server"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if config.IsDevelopment() {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.Infof("starting with %s", cfg)

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	var deps api.Dependencies

	if cfg.RedisHost != "" || cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			deps.Redis = redisClient
		}
	}

	if cfg.S3Bucket != "" {
		s3cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			logrus.WithError(err).Warn("object storage unavailable, image uploads disabled")
		} else {
			// Uploaded images are served straight from the bucket, so
			// it must allow public reads.
			if err := s3cfg.SetupBucketPolicy(context.Background()); err != nil {
				logrus.WithError(err).Warn("failed to apply bucket policy")
			}
			deps.S3 = s3cfg
		}
	}

	srv := server.New(db, cfg, deps)
	if err := srv.Start(); err != nil {
		logrus.WithError(err).Fatal("server error")
	}
	logrus.Info("server stopped")
}

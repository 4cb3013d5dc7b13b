package main

import (
	"github.com/sirupsen/logrus"

	"github.com/flavourly/backend/config"
	"github.com/flavourly/backend/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}
	logrus.Info("migrations applied")
}

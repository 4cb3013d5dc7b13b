package database

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/flavourly/backend/internal/models"
)

// Migrate brings the schema up to date for every model.
func Migrate(db *gorm.DB) error {
	logrus.WithField("dialect", db.Dialector.Name()).Info("running migrations")
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Recipe{},
		&models.RecipeLike{},
		&models.RecipeSave{},
		&models.RecipeRating{},
		&models.Collection{},
	)
}

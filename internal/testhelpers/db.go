package testhelpers

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/flavourly/backend/internal/database"
	"github.com/flavourly/backend/internal/models"
)

var seq int64

// NextN returns a process-unique counter for fixture names.
func NextN() int64 {
	return atomic.AddInt64(&seq, 1)
}

// SetupTestDB opens an isolated in-memory sqlite database with the
// full schema applied. Each call gets its own database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared", NextN())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

// CreateTestUser inserts a user with a real bcrypt hash for
// "password123".
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	n := NextN()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         fmt.Sprintf("Test User %d", n),
		Email:        fmt.Sprintf("user%d@example.com", n),
		Username:     fmt.Sprintf("test-user-%d", n),
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// RecipeOption mutates a recipe fixture before it is saved.
type RecipeOption func(*models.Recipe)

func WithTitle(title string) RecipeOption {
	return func(r *models.Recipe) { r.Title = title }
}

func WithDescription(description string) RecipeOption {
	return func(r *models.Recipe) { r.Description = description }
}

func WithCuisine(cuisine string) RecipeOption {
	return func(r *models.Recipe) { r.Cuisine = cuisine }
}

func WithMealType(mealType string) RecipeOption {
	return func(r *models.Recipe) { r.MealType = mealType }
}

func WithDifficulty(difficulty string) RecipeOption {
	return func(r *models.Recipe) { r.Difficulty = difficulty }
}

func WithTags(tags ...string) RecipeOption {
	return func(r *models.Recipe) { r.Tags = models.JSONBStringArray(tags) }
}

func WithIngredients(names ...string) RecipeOption {
	return func(r *models.Recipe) {
		list := make(models.IngredientList, 0, len(names))
		for _, name := range names {
			list = append(list, models.Ingredient{Name: name, Quantity: 1, Unit: "cup"})
		}
		r.Ingredients = list
	}
}

func WithTimes(prep, cook int) RecipeOption {
	return func(r *models.Recipe) {
		r.PrepTime = prep
		r.CookTime = cook
	}
}

func WithRating(average float64, count int) RecipeOption {
	return func(r *models.Recipe) {
		r.AverageRating = average
		r.RatingCount = count
	}
}

func WithViews(views int) RecipeOption {
	return func(r *models.Recipe) { r.ViewCount = views }
}

func WithPublishedAt(at time.Time) RecipeOption {
	return func(r *models.Recipe) { r.PublishedAt = &at }
}

// Draft marks the recipe unpublished.
func Draft() RecipeOption {
	return func(r *models.Recipe) {
		r.IsPublished = false
		r.PublishedAt = nil
	}
}

// CreateTestRecipe inserts a published recipe owned by userID. Options
// override the defaults.
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, opts ...RecipeOption) *models.Recipe {
	t.Helper()

	n := NextN()
	published := time.Now().Add(-time.Duration(n) * time.Minute)
	recipe := &models.Recipe{
		UserID:      userID,
		Title:       fmt.Sprintf("Test Recipe %d", n),
		Slug:        fmt.Sprintf("test-recipe-%d", n),
		Description: "A test recipe",
		PrepTime:    15,
		CookTime:    30,
		Servings:    4,
		Difficulty:  "medium",
		Cuisine:     "italian",
		MealType:    "dinner",
		IsPublished: true,
		PublishedAt: &published,
	}
	for _, opt := range opts {
		opt(recipe)
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

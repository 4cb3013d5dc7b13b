package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/flavourly/backend/config"
	"github.com/flavourly/backend/internal/database"
	"github.com/flavourly/backend/internal/models"
	"github.com/flavourly/backend/internal/service"
)

var (
	mealTypes    = []string{"breakfast", "lunch", "dinner", "dessert", "snack", "appetizer"}
	difficulties = []string{"easy", "medium", "hard"}
	units        = []string{"g", "kg", "ml", "l", "tbsp", "tsp", "cup", "piece"}
	tagPool      = []string{"vegan", "vegetarian", "gluten-free", "spicy", "quick", "comfort-food", "healthy", "one-pot", "grill", "baking"}
)

func main() {
	count := flag.Int("count", 40, "number of recipes to seed")
	seed := flag.Int64("seed", 0, "faker seed, 0 for time-based")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	faker := gofakeit.New(*seed)

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to run migrations")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("seed-password"), 12)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash seed password")
	}

	author := models.User{
		Name:         faker.Name(),
		Email:        fmt.Sprintf("seed_%d@flavourly.dev", time.Now().Unix()),
		PasswordHash: string(hash),
		IsChef:       true,
		Bio:          faker.Sentence(12),
	}
	author.Username = fmt.Sprintf("%s-%d", service.GenerateSlug(author.Name), time.Now().Unix())
	if err := db.Create(&author).Error; err != nil {
		logrus.WithError(err).Fatal("failed to create seed user")
	}

	seeded := 0
	for i := 0; i < *count; i++ {
		recipe := fakeRecipe(faker, author)
		if err := db.Create(&recipe).Error; err != nil {
			logrus.WithError(err).WithField("title", recipe.Title).Error("failed to seed recipe")
			continue
		}
		seeded++
	}

	if err := db.Model(&models.User{}).Where("id = ?", author.ID).
		Update("recipe_count", seeded).Error; err != nil {
		logrus.WithError(err).Warn("failed to update recipe count")
	}

	logrus.WithFields(logrus.Fields{
		"count":  seeded,
		"author": author.Username,
	}).Info("seeding complete")
}

func fakeRecipe(faker *gofakeit.Faker, author models.User) models.Recipe {
	title := fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), faker.Dinner())

	ingredients := make(models.IngredientList, 0, 8)
	for i := 0; i < faker.Number(3, 8); i++ {
		ingredients = append(ingredients, models.Ingredient{
			Name:     faker.Vegetable(),
			Quantity: float64(faker.Number(1, 500)),
			Unit:     faker.RandomString(units),
		})
	}

	instructions := make(models.InstructionList, 0, 7)
	for i := 0; i < faker.Number(3, 7); i++ {
		instructions = append(instructions, models.Instruction{
			Step:        i + 1,
			Description: faker.Sentence(14),
			Duration:    faker.Number(2, 20),
		})
	}

	tags := make(models.JSONBStringArray, 0, 4)
	for _, tag := range tagPool {
		if faker.Bool() && len(tags) < 4 {
			tags = append(tags, tag)
		}
	}

	published := time.Now().Add(-time.Duration(faker.Number(1, 365*24)) * time.Hour)
	ratingCount := faker.Number(0, 120)
	var avg float64
	if ratingCount > 0 {
		avg = faker.Float64Range(1, 5)
	}

	return models.Recipe{
		UserID:        author.ID,
		Title:         title,
		Slug:          fmt.Sprintf("%s-%d", service.GenerateSlug(title), time.Now().UnixNano()),
		Description:   faker.Sentence(20),
		PrepTime:      faker.Number(5, 45),
		CookTime:      faker.Number(5, 120),
		Servings:      faker.Number(1, 8),
		Difficulty:    faker.RandomString(difficulties),
		Cuisine:       faker.RandomString(models.Cuisines),
		MealType:      faker.RandomString(mealTypes),
		Ingredients:   ingredients,
		Instructions:  instructions,
		Tags:          tags,
		LikeCount:     faker.Number(0, 300),
		SaveCount:     faker.Number(0, 150),
		ViewCount:     faker.Number(0, 5000),
		AverageRating: avg,
		RatingCount:   ratingCount,
		IsPublished:   true,
		PublishedAt:   &published,
	}
}

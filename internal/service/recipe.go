package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/flavourly/backend/internal/models"
	"github.com/flavourly/backend/internal/search"
	"github.com/flavourly/backend/internal/types"
)

// RecipeService handles recipe operations.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// authorScope projects the owner reference down to the fields clients
// need. The id is required for GORM to stitch the association.
func authorScope(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "username", "avatar")
}

// CreateRecipe persists a new recipe owned by userID. The slug is
// derived from the title; on collision a timestamp suffix keeps it
// unique.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	slug := GenerateSlug(req.Title)
	if slug == "" {
		slug = "recipe"
	}
	var existing models.Recipe
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error; err == nil {
		slug = fmt.Sprintf("%s-%d", slug, time.Now().UnixMilli())
	}

	servings := req.Servings
	if servings == 0 {
		servings = 4
	}
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "medium"
	}

	recipe := models.Recipe{
		UserID:       userID,
		Title:        req.Title,
		Slug:         slug,
		Description:  req.Description,
		HeroImage:    req.HeroImage,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Servings:     servings,
		Difficulty:   difficulty,
		Cuisine:      req.Cuisine,
		MealType:     req.MealType,
		Ingredients:  models.IngredientList(req.Ingredients),
		Instructions: models.InstructionList(req.Instructions),
		Tags:         models.JSONBStringArray(req.Tags),
		IsPublished:  req.IsPublished,
	}
	if req.IsPublished {
		now := time.Now()
		recipe.PublishedAt = &now
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("recipe_count", gorm.Expr("recipe_count + 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListParams are the filters accepted by ListRecipes.
type ListParams struct {
	Cuisine    string
	MealType   string
	Difficulty string
	UserID     string
}

// ListRecipes returns published recipes, newest first, with the
// optional exact-match filters applied.
func (s *RecipeService) ListRecipes(ctx context.Context, params ListParams, pager search.Pager) ([]models.Recipe, search.Pagination, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("is_published = ?", true)
		if params.Cuisine != "" {
			tx = tx.Where("cuisine = ?", params.Cuisine)
		}
		if params.MealType != "" {
			tx = tx.Where("meal_type = ?", params.MealType)
		}
		if params.Difficulty != "" {
			tx = tx.Where("difficulty = ?", params.Difficulty)
		}
		if params.UserID != "" {
			tx = tx.Where("user_id = ?", params.UserID)
		}
		return tx
	}
	return s.page(ctx, scope, "published_at DESC", pager)
}

// SearchRecipes runs the full filter/sort/page pipeline. The match and
// count queries are issued concurrently; a failure of either fails the
// whole search.
func (s *RecipeService) SearchRecipes(ctx context.Context, params search.Params, pager search.Pager) ([]models.Recipe, search.Pagination, error) {
	return s.page(ctx, params.Scope(), params.OrderClause(), pager)
}

// MyRecipes returns the caller's own recipes, drafts included, most
// recently edited first. Status narrows to "published" or "draft".
func (s *RecipeService) MyRecipes(ctx context.Context, userID uuid.UUID, status string, pager search.Pager) ([]models.Recipe, search.Pagination, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("user_id = ?", userID)
		switch status {
		case "published":
			tx = tx.Where("is_published = ?", true)
		case "draft":
			tx = tx.Where("is_published = ?", false)
		}
		return tx
	}
	return s.page(ctx, scope, "updated_at DESC", pager)
}

// page applies a filter scope, ordering and pagination, running the
// page query and the total count concurrently.
func (s *RecipeService) page(ctx context.Context, scope func(*gorm.DB) *gorm.DB, order string, pager search.Pager) ([]models.Recipe, search.Pagination, error) {
	recipes := make([]models.Recipe, 0, pager.Limit)
	var total int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).Scopes(scope).
			Preload("Author", authorScope).
			Order(order).
			Offset(pager.Offset()).
			Limit(pager.Limit).
			Find(&recipes).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).Model(&models.Recipe{}).Scopes(scope).Count(&total).Error
	})
	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("recipe query failed")
		return nil, search.Pagination{}, err
	}

	return recipes, pager.Paginate(total), nil
}

// GetBySlug returns a published recipe with its author and bumps the
// view counter.
func (s *RecipeService) GetBySlug(ctx context.Context, slug string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		Preload("Author", authorScope).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", recipe.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		logrus.WithError(err).WithField("slug", slug).Warn("failed to bump view count")
	}
	recipe.ViewCount++

	return &recipe, nil
}

// DeleteRecipe removes a recipe owned by userID together with its
// dependent like, save and rating rows.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if recipe.UserID != userID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RecipeLike{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeSave{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.RecipeRating{}, "recipe_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ? AND recipe_count > 0", userID).
			UpdateColumn("recipe_count", gorm.Expr("recipe_count - 1")).Error
	})
}

// CuisineList returns the distinct cuisines present on published
// recipes.
func (s *RecipeService) CuisineList(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "cuisine")
}

// MealTypeList returns the distinct meal types present on published
// recipes.
func (s *RecipeService) MealTypeList(ctx context.Context) ([]string, error) {
	return s.distinctColumn(ctx, "meal_type")
}

func (s *RecipeService) distinctColumn(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("is_published = ?", true).
		Where(column+" <> ''").
		Distinct().
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

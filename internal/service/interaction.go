package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flavourly/backend/internal/models"
	"github.com/flavourly/backend/internal/search"
)

// InteractionService handles likes, saves and ratings. Counters on the
// recipe row are maintained in the same transaction as the join row.
type InteractionService struct {
	db *gorm.DB
}

func NewInteractionService(db *gorm.DB) *InteractionService {
	return &InteractionService{db: db}
}

func (s *InteractionService) recipeExists(ctx context.Context, recipeID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).Select("id").First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// LikeRecipe records a like. Liking twice returns ErrAlreadyExists and
// leaves the counter untouched.
func (s *InteractionService) LikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.RecipeLike{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&count)
	if count > 0 {
		return ErrAlreadyExists
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.RecipeLike{RecipeID: recipeID, UserID: userID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
}

// UnlikeRecipe removes a like if present.
func (s *InteractionService) UnlikeRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.RecipeLike{}, "recipe_id = ? AND user_id = ?", recipeID, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Recipe{}).Where("id = ? AND like_count > 0", recipeID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
}

// SaveRecipe bookmarks a recipe for the user.
func (s *InteractionService) SaveRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return err
	}

	var count int64
	s.db.WithContext(ctx).Model(&models.RecipeSave{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&count)
	if count > 0 {
		return ErrAlreadyExists
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		save := models.RecipeSave{RecipeID: recipeID, UserID: userID}
		if err := tx.Create(&save).Error; err != nil {
			return err
		}
		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			UpdateColumn("save_count", gorm.Expr("save_count + 1")).Error
	})
}

// UnsaveRecipe removes a bookmark if present.
func (s *InteractionService) UnsaveRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.RecipeSave{}, "recipe_id = ? AND user_id = ?", recipeID, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&models.Recipe{}).Where("id = ? AND save_count > 0", recipeID).
			UpdateColumn("save_count", gorm.Expr("save_count - 1")).Error
	})
}

// IsLiked reports whether the user has liked the recipe.
func (s *InteractionService) IsLiked(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeLike{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&count).Error
	return count > 0, err
}

// IsSaved reports whether the user has bookmarked the recipe.
func (s *InteractionService) IsSaved(ctx context.Context, recipeID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.RecipeSave{}).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).Count(&count).Error
	return count > 0, err
}

// SavedRecipes returns the user's bookmarked recipes, most recently
// saved first.
func (s *InteractionService) SavedRecipes(ctx context.Context, userID uuid.UUID, pager search.Pager) ([]models.Recipe, search.Pagination, error) {
	var (
		recipes []models.Recipe
		total   int64
	)

	base := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Joins("JOIN recipe_saves ON recipe_saves.recipe_id = recipes.id").
		Where("recipe_saves.user_id = ?", userID)

	if err := base.Count(&total).Error; err != nil {
		return nil, search.Pagination{}, err
	}

	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Joins("JOIN recipe_saves ON recipe_saves.recipe_id = recipes.id").
		Where("recipe_saves.user_id = ?", userID).
		Preload("Author", authorScope).
		Order("recipe_saves.created_at DESC").
		Offset(pager.Offset()).
		Limit(pager.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, search.Pagination{}, err
	}

	return recipes, pager.Paginate(total), nil
}

// RateRecipe records or replaces the user's 1-5 rating and refreshes
// the recipe's average and count from the rating rows.
func (s *InteractionService) RateRecipe(ctx context.Context, recipeID, userID uuid.UUID, value int) (*models.Recipe, error) {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rating models.RecipeRating
		err := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).First(&rating).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rating = models.RecipeRating{RecipeID: recipeID, UserID: userID, Value: value}
			if err := tx.Create(&rating).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&rating).Update("value", value).Error; err != nil {
				return err
			}
		}

		type aggregate struct {
			Avg   float64
			Count int64
		}
		var agg aggregate
		if err := tx.Model(&models.RecipeRating{}).
			Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS count").
			Where("recipe_id = ?", recipeID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&models.Recipe{}).Where("id = ?", recipeID).
			Updates(map[string]interface{}{
				"average_rating": agg.Avg,
				"rating_count":   agg.Count,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/flavourly/backend/internal/models"
)

// CollectionService handles user recipe collections.
type CollectionService struct {
	db *gorm.DB
}

func NewCollectionService(db *gorm.DB) *CollectionService {
	return &CollectionService{db: db}
}

// CreateCollection creates an empty collection for the user.
func (s *CollectionService) CreateCollection(ctx context.Context, userID uuid.UUID, name, description string, isPublic bool) (*models.Collection, error) {
	collection := models.Collection{
		UserID:      userID,
		Name:        name,
		Description: description,
		IsPublic:    isPublic,
	}
	if err := s.db.WithContext(ctx).Create(&collection).Error; err != nil {
		return nil, err
	}
	return &collection, nil
}

// ListCollections returns the user's collections with their recipes.
func (s *CollectionService) ListCollections(ctx context.Context, userID uuid.UUID) ([]models.Collection, error) {
	var collections []models.Collection
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "user_id", "title", "slug", "hero_image", "cuisine", "average_rating")
		}).
		Order("created_at DESC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (s *CollectionService) ownedCollection(ctx context.Context, id, userID uuid.UUID) (*models.Collection, error) {
	var collection models.Collection
	if err := s.db.WithContext(ctx).First(&collection, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if collection.UserID != userID {
		return nil, ErrForbidden
	}
	return &collection, nil
}

// AddRecipe appends a recipe to one of the user's collections.
func (s *CollectionService) AddRecipe(ctx context.Context, collectionID, recipeID, userID uuid.UUID) error {
	collection, err := s.ownedCollection(ctx, collectionID, userID)
	if err != nil {
		return err
	}

	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.WithContext(ctx).Model(collection).Association("Recipes").Append(&recipe)
}

// RemoveRecipe drops a recipe from one of the user's collections.
func (s *CollectionService) RemoveRecipe(ctx context.Context, collectionID, recipeID, userID uuid.UUID) error {
	collection, err := s.ownedCollection(ctx, collectionID, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(collection).
		Association("Recipes").Delete(&models.Recipe{ID: recipeID})
}

// DeleteCollection removes one of the user's collections.
func (s *CollectionService) DeleteCollection(ctx context.Context, id, userID uuid.UUID) error {
	collection, err := s.ownedCollection(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(collection).Error
}

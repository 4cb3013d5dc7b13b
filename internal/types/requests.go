package types

import "github.com/flavourly/backend/internal/models"

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	Avatar          string `json:"avatar"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the request body for a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// UpdateProfileRequest carries the mutable profile fields. Pointer
// fields distinguish "not supplied" from a supplied zero value.
type UpdateProfileRequest struct {
	Name        *string  `json:"name"`
	Bio         *string  `json:"bio"`
	Avatar      *string  `json:"avatar"`
	IsChef      *bool    `json:"isChef"`
	Specialties []string `json:"specialties"`
}

// CreateRecipeRequest is the request body for recipe creation.
type CreateRecipeRequest struct {
	Title        string               `json:"title" binding:"required"`
	Description  string               `json:"description"`
	HeroImage    string               `json:"heroImage"`
	PrepTime     int                  `json:"prepTime" binding:"omitempty,min=0"`
	CookTime     int                  `json:"cookTime" binding:"omitempty,min=0"`
	Servings     int                  `json:"servings" binding:"omitempty,min=1"`
	Difficulty   string               `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Cuisine      string               `json:"cuisine" binding:"omitempty,oneof=italian chinese indian mexican japanese french thai greek american mediterranean other"`
	MealType     string               `json:"mealType"`
	Ingredients  []models.Ingredient  `json:"ingredients"`
	Instructions []models.Instruction `json:"instructions"`
	Tags         []string             `json:"tags"`
	IsPublished  bool                 `json:"isPublished"`
}

// RateRecipeRequest is the request body for rating a recipe.
type RateRecipeRequest struct {
	Value int `json:"value" binding:"required,min=1,max=5"`
}

// CreateCollectionRequest is the request body for creating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsPublic    bool   `json:"isPublic"`
}

// UserSummary is the projected author subset attached to recipes and
// returned from auth endpoints.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flavourly/backend/internal/middleware"
	"github.com/flavourly/backend/internal/search"
	"github.com/flavourly/backend/internal/service"
	"github.com/flavourly/backend/internal/types"
)

// maxImageBytes caps uploaded image size at 8 MiB.
const maxImageBytes = 8 << 20

// RecipeHandler serves recipe browsing, search, authoring and
// interactions.
type RecipeHandler struct {
	recipeService      *service.RecipeService
	interactionService *service.InteractionService
	authService        *service.AuthService
	imageService       *service.ImageService
}

func NewRecipeHandler(recipeService *service.RecipeService, interactionService *service.InteractionService, authService *service.AuthService, imageService *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:      recipeService,
		interactionService: interactionService,
		authService:        authService,
		imageService:       imageService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	authed := middleware.AuthMiddleware(h.authService)
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/search", h.SearchRecipes)
		recipes.GET("/cuisine-list", h.CuisineList)
		recipes.GET("/mealtype-list", h.MealTypeList)
		recipes.GET("/my/recipes", authed, h.MyRecipes)
		recipes.GET("/saved", authed, h.SavedRecipes)
		recipes.GET("/:slug", h.GetRecipe)
		recipes.POST("", authed, h.CreateRecipe)
		recipes.POST("/images", authed, h.UploadImage)
		recipes.DELETE("/:id", authed, h.DeleteRecipe)
		recipes.POST("/:id/like", authed, h.LikeRecipe)
		recipes.DELETE("/:id/like", authed, h.UnlikeRecipe)
		recipes.POST("/:id/save", authed, h.SaveRecipe)
		recipes.DELETE("/:id/save", authed, h.UnsaveRecipe)
		recipes.POST("/:id/rate", authed, h.RateRecipe)
	}
}

func pagerFromQuery(c *gin.Context) search.Pager {
	return search.NewPager(c.Query("page"), c.Query("limit"))
}

// SearchRecipes is the filtered search endpoint. The match and count
// queries run concurrently; the echoed filters mirror the raw input.
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	params := search.Params{
		Query:       c.Query("q"),
		Cuisine:     c.Query("cuisine"),
		MealType:    c.Query("mealType"),
		Difficulty:  c.Query("difficulty"),
		PrepTimeMax: c.Query("prepTimeMax"),
		CookTimeMax: c.Query("cookTimeMax"),
		Tags:        c.QueryArray("tags"),
		MinRating:   c.Query("minRating"),
		SortBy:      c.DefaultQuery("sortBy", "relevance"),
	}

	recipes, pagination, err := h.recipeService.SearchRecipes(c.Request.Context(), params, pagerFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipes":    recipes,
		"pagination": pagination,
		"filters":    params,
	})
}

// ListRecipes returns published recipes with optional exact-match
// filters.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	params := service.ListParams{
		Cuisine:    c.Query("cuisine"),
		MealType:   c.Query("mealType"),
		Difficulty: c.Query("difficulty"),
		UserID:     c.Query("userId"),
	}

	recipes, pagination, err := h.recipeService.ListRecipes(c.Request.Context(), params, pagerFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipes":    recipes,
		"pagination": pagination,
	})
}

// MyRecipes returns the caller's recipes, drafts included.
func (h *RecipeHandler) MyRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	recipes, pagination, err := h.recipeService.MyRecipes(c.Request.Context(), userID, c.Query("status"), pagerFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipes":    recipes,
		"pagination": pagination,
	})
}

// SavedRecipes returns the caller's bookmarks.
func (h *RecipeHandler) SavedRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	recipes, pagination, err := h.interactionService.SavedRecipes(c.Request.Context(), userID, pagerFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"recipes":    recipes,
		"pagination": pagination,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		logrus.WithError(err).Error("failed to create recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Recipe created successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), recipeID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this recipe"})
		default:
			logrus.WithError(err).Error("failed to delete recipe")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recipe deleted successfully",
	})
}

func (h *RecipeHandler) CuisineList(c *gin.Context) {
	cuisines, err := h.recipeService.CuisineList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cuisines"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"cuisines": cuisines,
	})
}

func (h *RecipeHandler) MealTypeList(c *gin.Context) {
	mealTypes, err := h.recipeService.MealTypeList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch meal types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"mealtypes": mealTypes,
	})
}

// UploadImage accepts a multipart image and stores it in object
// storage. The folder form value selects hero, instruction or avatar
// sizing conventions on the frontend; the backend only namespaces keys.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image uploads are not configured"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds the size limit"})
		return
	}

	folder := service.FolderRecipes
	switch c.PostForm("kind") {
	case "instruction":
		folder = service.FolderInstructions
	case "avatar":
		folder = service.FolderAvatars
	}

	url, err := h.imageService.Upload(c.Request.Context(), data, folder)
	if err != nil {
		logrus.WithError(err).Error("image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"url":     url,
	})
}

func (h *RecipeHandler) recipeIDParam(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, uuid.Nil, false
	}
	return recipeID, userID, true
}

func (h *RecipeHandler) LikeRecipe(c *gin.Context) {
	recipeID, userID, ok := h.recipeIDParam(c)
	if !ok {
		return
	}

	err := h.interactionService.LikeRecipe(c.Request.Context(), recipeID, userID)
	if err != nil && !errors.Is(err, service.ErrAlreadyExists) {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		logrus.WithError(err).Error("failed to like recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecipeHandler) UnlikeRecipe(c *gin.Context) {
	recipeID, userID, ok := h.recipeIDParam(c)
	if !ok {
		return
	}

	if err := h.interactionService.UnlikeRecipe(c.Request.Context(), recipeID, userID); err != nil {
		logrus.WithError(err).Error("failed to unlike recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unlike recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	recipeID, userID, ok := h.recipeIDParam(c)
	if !ok {
		return
	}

	err := h.interactionService.SaveRecipe(c.Request.Context(), recipeID, userID)
	if err != nil && !errors.Is(err, service.ErrAlreadyExists) {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		logrus.WithError(err).Error("failed to save recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	recipeID, userID, ok := h.recipeIDParam(c)
	if !ok {
		return
	}

	if err := h.interactionService.UnsaveRecipe(c.Request.Context(), recipeID, userID); err != nil {
		logrus.WithError(err).Error("failed to unsave recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsave recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	recipeID, userID, ok := h.recipeIDParam(c)
	if !ok {
		return
	}

	var req types.RateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	recipe, err := h.interactionService.RateRecipe(c.Request.Context(), recipeID, userID, req.Value)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		logrus.WithError(err).Error("failed to rate recipe")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rate recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"average_rating": recipe.AverageRating,
		"rating_count":   recipe.RatingCount,
	})
}

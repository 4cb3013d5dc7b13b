package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flavourly/backend/internal/middleware"
	"github.com/flavourly/backend/internal/service"
	"github.com/flavourly/backend/internal/types"
)

// CollectionHandler serves the user's recipe collections. Every route
// requires authentication.
type CollectionHandler struct {
	collectionService *service.CollectionService
	authService       *service.AuthService
}

func NewCollectionHandler(collectionService *service.CollectionService, authService *service.AuthService) *CollectionHandler {
	return &CollectionHandler{
		collectionService: collectionService,
		authService:       authService,
	}
}

func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup) {
	collections := router.Group("/collections")
	collections.Use(middleware.AuthMiddleware(h.authService))
	{
		collections.GET("", h.ListCollections)
		collections.POST("", h.CreateCollection)
		collections.DELETE("/:id", h.DeleteCollection)
		collections.POST("/:id/recipes/:recipeId", h.AddRecipe)
		collections.DELETE("/:id/recipes/:recipeId", h.RemoveRecipe)
	}
}

func (h *CollectionHandler) ListCollections(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	collections, err := h.collectionService.ListCollections(c.Request.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("failed to list collections")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"collections": collections,
	})
}

func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req types.CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	collection, err := h.collectionService.CreateCollection(c.Request.Context(), userID, req.Name, req.Description, req.IsPublic)
	if err != nil {
		logrus.WithError(err).Error("failed to create collection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create collection"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"collection": collection,
	})
}

// collectionIDs parses the path params shared by the membership routes.
func (h *CollectionHandler) collectionIDs(c *gin.Context) (collectionID, recipeID, userID uuid.UUID, ok bool) {
	userID, ok = currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	recipeID, err = uuid.Parse(c.Param("recipeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}

	return collectionID, recipeID, userID, true
}

func (h *CollectionHandler) respondCollectionErr(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
	default:
		logrus.WithError(err).Error(action)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

func (h *CollectionHandler) AddRecipe(c *gin.Context) {
	collectionID, recipeID, userID, ok := h.collectionIDs(c)
	if !ok {
		return
	}

	if err := h.collectionService.AddRecipe(c.Request.Context(), collectionID, recipeID, userID); err != nil {
		h.respondCollectionErr(c, err, "failed to add recipe to collection")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CollectionHandler) RemoveRecipe(c *gin.Context) {
	collectionID, recipeID, userID, ok := h.collectionIDs(c)
	if !ok {
		return
	}

	if err := h.collectionService.RemoveRecipe(c.Request.Context(), collectionID, recipeID, userID); err != nil {
		h.respondCollectionErr(c, err, "failed to remove recipe from collection")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	collectionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid collection id"})
		return
	}

	if err := h.collectionService.DeleteCollection(c.Request.Context(), collectionID, userID); err != nil {
		h.respondCollectionErr(c, err, "failed to delete collection")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

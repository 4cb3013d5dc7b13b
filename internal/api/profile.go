package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flavourly/backend/internal/middleware"
	"github.com/flavourly/backend/internal/service"
)

// ProfileHandler serves public profiles and the follow graph.
type ProfileHandler struct {
	profileService *service.ProfileService
	authService    *service.AuthService
}

func NewProfileHandler(profileService *service.ProfileService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	authed := middleware.AuthMiddleware(h.authService)
	{
		users.GET("/:username", h.GetProfile)
		users.POST("/:username/follow", authed, h.Follow)
		users.DELETE("/:username/follow", authed, h.Unfollow)
	}
}

// GetProfile returns a public profile. When the caller is
// authenticated, the response also reports whether they follow the
// profile owner.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	user, err := h.profileService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	payload := gin.H{
		"id":              user.ID,
		"name":            user.Name,
		"username":        user.Username,
		"avatar":          user.Avatar,
		"bio":             user.Bio,
		"is_chef":         user.IsChef,
		"specialties":     user.Specialties,
		"follower_count":  user.FollowerCount,
		"following_count": user.FollowingCount,
		"recipe_count":    user.RecipeCount,
		"created_at":      user.CreatedAt,
	}

	if viewerID, ok := viewerFromToken(c, h.authService); ok {
		following, err := h.profileService.IsFollowing(c.Request.Context(), viewerID, user.ID)
		if err == nil {
			payload["is_following"] = following
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    payload,
	})
}

// viewerFromToken resolves an optional bearer token on a public route.
func viewerFromToken(c *gin.Context, authService *service.AuthService) (uuid.UUID, bool) {
	token, ok := middleware.BearerToken(c)
	if !ok {
		return uuid.Nil, false
	}
	claims, err := authService.ValidateToken(token)
	if err != nil {
		return uuid.Nil, false
	}
	return claims.UserID, true
}

func (h *ProfileHandler) followee(c *gin.Context) (followerID, followeeID uuid.UUID, ok bool) {
	followerID, ok = currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, uuid.Nil, false
	}

	user, err := h.profileService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			logrus.WithError(err).Error("failed to fetch user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return uuid.Nil, uuid.Nil, false
	}

	return followerID, user.ID, true
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	followerID, followeeID, ok := h.followee(c)
	if !ok {
		return
	}

	err := h.profileService.Follow(c.Request.Context(), followerID, followeeID)
	if err != nil && !errors.Is(err, service.ErrAlreadyExists) {
		if errors.Is(err, service.ErrSelfFollow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot follow yourself"})
			return
		}
		logrus.WithError(err).Error("failed to follow user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	followerID, followeeID, ok := h.followee(c)
	if !ok {
		return
	}

	if err := h.profileService.Unfollow(c.Request.Context(), followerID, followeeID); err != nil {
		logrus.WithError(err).Error("failed to unfollow user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

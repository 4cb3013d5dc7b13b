package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/flavourly/backend/internal/middleware"
	"github.com/flavourly/backend/internal/models"
	"github.com/flavourly/backend/internal/service"
	"github.com/flavourly/backend/internal/types"
)

// AuthHandler serves registration, login and the current-user profile.
type AuthHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
	emailService   *service.EmailService
	imageService   *service.ImageService
	rateLimiter    *middleware.RateLimiter
}

func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService, emailService *service.EmailService, imageService *service.ImageService, rateLimiter *middleware.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		profileService: profileService,
		emailService:   emailService,
		imageService:   imageService,
		rateLimiter:    rateLimiter,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	if h.rateLimiter != nil {
		auth.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
		auth.POST("/change-password", middleware.AuthMiddleware(h.authService), h.ChangePassword)
		auth.PUT("/update-profile", middleware.AuthMiddleware(h.authService), h.UpdateProfile)
	}
}

// userPayload is the user shape returned from auth endpoints.
func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"name":            user.Name,
		"username":        user.Username,
		"avatar":          user.Avatar,
		"bio":             user.Bio,
		"is_chef":         user.IsChef,
		"specialties":     user.Specialties,
		"follower_count":  user.FollowerCount,
		"following_count": user.FollowingCount,
		"recipe_count":    user.RecipeCount,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide a valid name, email and password"})
		return
	}

	user, token, err := h.authService.Register(req.Name, req.Email, req.Password, req.Avatar)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again."})
		return
	}

	// Welcome mail must not block or fail the registration.
	go func(u models.User) {
		if err := h.emailService.SendWelcomeEmail(&u); err != nil {
			logrus.WithError(err).Warn("failed to send welcome email")
		}
	}(*user)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user":    userPayload(user),
		"token":   token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide email and password"})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user),
		"token":   token,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.profileService.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithError(err).Error("failed to fetch current user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user),
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req types.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide current and new password"})
		return
	}

	err := h.profileService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		logrus.WithError(err).Error("password change failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password changed successfully",
	})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var oldAvatar string
	if req.Avatar != nil {
		if current, err := h.profileService.GetByID(c.Request.Context(), userID); err == nil {
			oldAvatar = current.Avatar
		}
	}

	user, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logrus.WithError(err).Error("profile update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	// The replaced avatar object is garbage once the profile points
	// elsewhere.
	if h.imageService != nil && oldAvatar != "" && oldAvatar != user.Avatar {
		go func(url string) {
			if err := h.imageService.Delete(context.Background(), url); err != nil {
				logrus.WithError(err).Warn("failed to delete old avatar")
			}
		}(oldAvatar)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    userPayload(user),
	})
}

package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/flavourly/backend/config"
	"github.com/flavourly/backend/internal/middleware"
	"github.com/flavourly/backend/internal/service"
)

// Dependencies carries the optional external collaborators. Redis and
// S3 may be nil; the handlers degrade to running without rate limiting
// and without image uploads.
type Dependencies struct {
	Redis *redis.Client
	S3    *config.S3Config
}

// SetupAPI wires services and handlers under /api/v1.
func SetupAPI(router *gin.Engine, db *gorm.DB, cfg *config.Config, deps Dependencies) {
	v1 := router.Group("/api/v1")
	{
		authService := service.NewAuthService(db, cfg.JWTSecret)
		profileService := service.NewProfileService(db)
		emailService := service.NewEmailService()
		recipeService := service.NewRecipeService(db)
		interactionService := service.NewInteractionService(db)
		collectionService := service.NewCollectionService(db)

		var imageService *service.ImageService
		if deps.S3 != nil {
			imageService = service.NewImageService(deps.S3)
		}

		var limiter *middleware.RateLimiter
		if deps.Redis != nil {
			limiter = middleware.NewRateLimiter(deps.Redis, middleware.RateLimitConfig{
				Window:    time.Minute,
				Limit:     30,
				KeyPrefix: "ratelimit:auth",
			})
		}

		authHandler := NewAuthHandler(authService, profileService, emailService, imageService, limiter)
		profileHandler := NewProfileHandler(profileService, authService)
		recipeHandler := NewRecipeHandler(recipeService, interactionService, authService, imageService)
		collectionHandler := NewCollectionHandler(collectionService, authService)

		authHandler.RegisterRoutes(v1)
		profileHandler.RegisterRoutes(v1)
		recipeHandler.RegisterRoutes(v1)
		collectionHandler.RegisterRoutes(v1)
	}
}

// currentUserID pulls the authenticated user id set by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/db"
	"github.com/ladle-dev/ladle/internal/logger"
	"github.com/ladle-dev/ladle/internal/models"
	"github.com/ladle-dev/ladle/internal/services"
	"github.com/ladle-dev/ladle/internal/types"
	"github.com/ladle-dev/ladle/internal/utils"
)

func ListUsers(ctx *gin.Context) {
	limit, offset := utils.GetLimitOffset(ctx, 10)

	var users []models.User

	if err := db.DB.Order("id").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		logger.Error("failed to list users", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	viewerID := utils.GetViewerID(ctx)
	toggle := services.NewRelationToggle(db.DB, services.RelationFollow)
	response := make([]types.UserResponse, 0, len(users))

	for _, user := range users {
		subscribed := false

		if viewerID != 0 && viewerID != user.ID {
			exists, err := toggle.Exists(viewerID, user.ID)

			if err != nil {
				logger.Error("failed to check subscription", "error", err)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
				return
			}

			subscribed = exists
		}

		response = append(response, userResponse(user, subscribed))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetUser(ctx *gin.Context) {
	userID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	subscribed := false
	viewerID := utils.GetViewerID(ctx)

	if viewerID != 0 && viewerID != user.ID {
		exists, err := services.NewRelationToggle(db.DB, services.RelationFollow).Exists(viewerID, user.ID)

		if err != nil {
			logger.Error("failed to check subscription", "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
			return
		}

		subscribed = exists
	}

	ctx.JSON(http.StatusOK, userResponse(user, subscribed))
}

func Subscribe(ctx *gin.Context) {
	authorID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := services.NewRelationToggle(db.DB, services.RelationFollow).Add(userID, authorID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	response, err := subscriptionResponse(ctx, authorID)

	if err != nil {
		logger.Error("failed to build subscription response", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

func Unsubscribe(ctx *gin.Context) {
	authorID, err := utils.GetUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := services.NewRelationToggle(db.DB, services.RelationFollow).Remove(userID, authorID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListSubscriptions returns the authors the current user follows, each
// with a preview of their recipes.
func ListSubscriptions(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	limit, offset := utils.GetLimitOffset(ctx, 10)

	var follows []models.Follow

	if err := db.DB.Where("user_id = ?", userID).Order("id").Limit(limit).Offset(offset).Find(&follows).Error; err != nil {
		logger.Error("failed to list subscriptions", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscriptions"})
		return
	}

	response := make([]types.SubscriptionResponse, 0, len(follows))

	for _, follow := range follows {
		sub, err := subscriptionResponse(ctx, follow.AuthorID)

		if err != nil {
			logger.Error("failed to build subscription response", "error", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve subscriptions"})
			return
		}

		response = append(response, sub)
	}

	ctx.JSON(http.StatusOK, response)
}

func subscriptionResponse(ctx *gin.Context, authorID uint) (types.SubscriptionResponse, error) {
	var author models.User

	if err := db.DB.First(&author, authorID).Error; err != nil {
		return types.SubscriptionResponse{}, err
	}

	recipesQuery := db.DB.Where("author_id = ?", authorID).Order("created_at DESC, id DESC")

	if limitStr := ctx.Query("recipes_limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			recipesQuery = recipesQuery.Limit(limit)
		}
	}

	var recipes []models.Recipe

	if err := recipesQuery.Find(&recipes).Error; err != nil {
		return types.SubscriptionResponse{}, err
	}

	var recipesCount int64

	if err := db.DB.Model(&models.Recipe{}).Where("author_id = ?", authorID).Count(&recipesCount).Error; err != nil {
		return types.SubscriptionResponse{}, err
	}

	preview := make([]types.ShortRecipeResponse, 0, len(recipes))

	for _, recipe := range recipes {
		preview = append(preview, types.ShortRecipeResponse{
			ID:          recipe.ID,
			Name:        recipe.Name,
			Image:       recipe.Image,
			CookingTime: recipe.CookingTime,
		})
	}

	return types.SubscriptionResponse{
		UserResponse: userResponse(author, true),
		Recipes:      preview,
		RecipesCount: recipesCount,
	}, nil
}

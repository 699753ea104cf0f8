package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/db"
	"github.com/ladle-dev/ladle/internal/models"
	"github.com/ladle-dev/ladle/internal/services"
	"github.com/ladle-dev/ladle/internal/types"
	"github.com/ladle-dev/ladle/internal/utils"
)

func AddFavorite(ctx *gin.Context) {
	addRecipeRelation(ctx, services.RelationFavorite)
}

func RemoveFavorite(ctx *gin.Context) {
	removeRecipeRelation(ctx, services.RelationFavorite)
}

func AddToShoppingCart(ctx *gin.Context) {
	addRecipeRelation(ctx, services.RelationCart)
}

func RemoveFromShoppingCart(ctx *gin.Context) {
	removeRecipeRelation(ctx, services.RelationCart)
}

func addRecipeRelation(ctx *gin.Context, kind services.RelationKind) {
	userID, recipeID, ok := relationPair(ctx)

	if !ok {
		return
	}

	if err := services.NewRelationToggle(db.DB, kind).Add(userID, recipeID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	var recipe models.Recipe

	if err := db.DB.First(&recipe, recipeID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		return
	}

	ctx.JSON(http.StatusCreated, types.ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	})
}

func removeRecipeRelation(ctx *gin.Context, kind services.RelationKind) {
	userID, recipeID, ok := relationPair(ctx)

	if !ok {
		return
	}

	if err := services.NewRelationToggle(db.DB, kind).Remove(userID, recipeID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func relationPair(ctx *gin.Context) (uint, uint, bool) {
	recipeID, err := utils.GetRecipeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return 0, 0, false
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, 0, false
	}

	return userID, recipeID, true
}

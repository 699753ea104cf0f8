package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/db"
	"github.com/ladle-dev/ladle/internal/logger"
	"github.com/ladle-dev/ladle/internal/models"
	"github.com/ladle-dev/ladle/internal/services"
	"github.com/ladle-dev/ladle/internal/types"
	"github.com/ladle-dev/ladle/internal/utils"
)

func ListIngredients(ctx *gin.Context) {
	ingredients, err := services.NewIngredientCatalog(db.DB).List(ctx.Query("name"))

	if err != nil {
		logger.Error("failed to list ingredients", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ingredients"})
		return
	}

	response := make([]types.IngredientResponse, 0, len(ingredients))

	for _, ingredient := range ingredients {
		response = append(response, ingredientResponse(ingredient))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetIngredient(ctx *gin.Context) {
	ingredientID, err := utils.GetIngredientID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := services.NewIngredientCatalog(db.DB).Resolve(ingredientID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, ingredientResponse(*ingredient))
}

func ingredientResponse(ingredient models.Ingredient) types.IngredientResponse {
	return types.IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

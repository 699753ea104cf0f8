package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetRecipeID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "recipe_id", "Recipe")
}

func GetUserID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "user_id", "User")
}

func GetTagID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "tag_id", "Tag")
}

func GetIngredientID(ctx *gin.Context) (uint, error) {
	return getIDParam(ctx, "ingredient_id", "Ingredient")
}

func getIDParam(ctx *gin.Context, name, entity string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New(entity + " ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + entity + " ID")
	}

	return uint(id), nil
}

// GetLimitOffset reads limit/offset pagination query params, clamping
// limit to [1, 100] with the given default.
func GetLimitOffset(ctx *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit

	if limitStr := ctx.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed >= 1 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0

	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}

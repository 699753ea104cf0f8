package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/db"
	"github.com/ladle-dev/ladle/internal/imagestore"
	"github.com/ladle-dev/ladle/internal/logger"
	"github.com/ladle-dev/ladle/internal/models"
	"github.com/ladle-dev/ladle/internal/services"
	"github.com/ladle-dev/ladle/internal/types"
	"github.com/ladle-dev/ladle/internal/utils"
)

// Images is the media store recipes save their pictures through. Set
// once at startup.
var Images *imagestore.Store

func InitImageStore(dir string) error {
	store, err := imagestore.New(dir)

	if err != nil {
		return err
	}

	Images = store
	return nil
}

type IngredientLineRequest struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount"`
}

// Image has no binding tag on purpose: a missing image falls through
// to the composer, which reports it as a per-field validation error
// like the other rules.
type RecipeRequest struct {
	Name        string                  `json:"name"`
	Text        string                  `json:"text" binding:"required"`
	Image       string                  `json:"image"`
	CookingTime int                     `json:"cooking_time"`
	Tags        []uint                  `json:"tags"`
	Ingredients []IngredientLineRequest `json:"ingredients"`
}

func (r RecipeRequest) toInput(image string) services.RecipeInput {
	lines := make([]services.IngredientLineInput, 0, len(r.Ingredients))

	for _, line := range r.Ingredients {
		lines = append(lines, services.IngredientLineInput{
			IngredientID: line.ID,
			Amount:       line.Amount,
		})
	}

	return services.RecipeInput{
		Name:        strings.TrimSpace(r.Name),
		Text:        r.Text,
		Image:       image,
		CookingTime: r.CookingTime,
		TagIDs:      r.Tags,
		Ingredients: lines,
	}
}

func CreateRecipe(ctx *gin.Context) {
	var req RecipeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	image, err := Images.Save(req.Image)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image: " + err.Error()})
		return
	}

	recipe, err := services.NewRecipeComposer(db.DB).Create(userID, req.toInput(image))

	if err != nil {
		discardStoredImage(image, req.Image)
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, recipeResponse(*recipe, userID == 0, false, false))
}

func ListRecipes(ctx *gin.Context) {
	viewerID := utils.GetViewerID(ctx)
	composer := services.NewRecipeComposer(db.DB)

	filter := services.RecipeFilter{TagSlugs: ctx.QueryArray("tags")}
	filter.Limit, filter.Offset = utils.GetLimitOffset(ctx, 10)

	if authorStr := ctx.Query("author"); authorStr != "" {
		authorID, err := strconv.ParseUint(authorStr, 10, 32)

		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
			return
		}

		filter.AuthorID = uint(authorID)
	}

	if ctx.Query("is_favorited") == "1" && viewerID != 0 {
		filter.FavoritedBy = viewerID
	}

	if ctx.Query("is_in_shopping_cart") == "1" && viewerID != 0 {
		filter.InCartOf = viewerID
	}

	recipes, err := composer.List(filter)

	if err != nil {
		logger.Error("failed to list recipes", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}

	favorited, inCart, err := composer.FlagSets(viewerID)

	if err != nil {
		logger.Error("failed to compute viewer flags", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}

	response := make([]types.RecipeResponse, 0, len(recipes))

	for _, recipe := range recipes {
		response = append(response, recipeResponse(recipe, viewerID == 0, favorited[recipe.ID], inCart[recipe.ID]))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetRecipe(ctx *gin.Context) {
	recipeID, err := utils.GetRecipeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	viewerID := utils.GetViewerID(ctx)
	composer := services.NewRecipeComposer(db.DB)

	recipe, err := composer.Get(recipeID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	favorited, inCart, err := composer.FlagSets(viewerID)

	if err != nil {
		logger.Error("failed to compute viewer flags", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		return
	}

	ctx.JSON(http.StatusOK, recipeResponse(*recipe, viewerID == 0, favorited[recipe.ID], inCart[recipe.ID]))
}

func UpdateRecipe(ctx *gin.Context) {
	recipeID, err := utils.GetRecipeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req RecipeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	image, err := Images.Save(req.Image)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image: " + err.Error()})
		return
	}

	composer := services.NewRecipeComposer(db.DB)

	var priorImage string

	if prior, err := composer.Get(recipeID); err == nil {
		priorImage = prior.Image
	}

	recipe, err := composer.Update(recipeID, userID, req.toInput(image))

	if err != nil {
		discardStoredImage(image, req.Image)
		respondServiceError(ctx, err)
		return
	}

	if priorImage != "" && priorImage != recipe.Image {
		if err := Images.Remove(priorImage); err != nil {
			logger.Warn("failed to remove replaced recipe image", "recipe_id", recipeID, "error", err)
		}
	}

	favorited, inCart, err := composer.FlagSets(userID)

	if err != nil {
		logger.Error("failed to compute viewer flags", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		return
	}

	ctx.JSON(http.StatusOK, recipeResponse(*recipe, false, favorited[recipe.ID], inCart[recipe.ID]))
}

func DeleteRecipe(ctx *gin.Context) {
	recipeID, err := utils.GetRecipeID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	composer := services.NewRecipeComposer(db.DB)

	recipe, err := composer.Get(recipeID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := composer.Delete(recipeID, userID); err != nil {
		respondServiceError(ctx, err)
		return
	}

	if err := Images.Remove(recipe.Image); err != nil {
		logger.Warn("failed to remove recipe image", "recipe_id", recipeID, "error", err)
	}

	ctx.Status(http.StatusNoContent)
}

// DownloadShoppingCart renders the aggregated shopping list as a
// plain-text attachment.
func DownloadShoppingCart(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	items, err := services.NewShoppingListAggregator(db.DB).Aggregate(userID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	var sb strings.Builder

	sb.WriteString("Shopping list\n\n")

	for _, item := range items {
		fmt.Fprintf(&sb, "%s (%s) - %d\n", item.Name, item.MeasurementUnit, item.Amount)
	}

	ctx.Header("Content-Disposition", `attachment; filename="shopping_list.txt"`)
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(sb.String()))
}

// discardStoredImage removes a file written for a request that then
// failed. References the store passed through unchanged are kept.
func discardStoredImage(stored, submitted string) {
	if stored == submitted {
		return
	}

	if err := Images.Remove(stored); err != nil {
		logger.Warn("failed to remove orphaned recipe image", "error", err)
	}
}

func recipeResponse(recipe models.Recipe, anonymous, favorited, inCart bool) types.RecipeResponse {
	tags := make([]types.TagResponse, 0, len(recipe.Tags))

	for _, tag := range recipe.Tags {
		tags = append(tags, tagResponse(tag))
	}

	lines := make([]types.IngredientLineResponse, 0, len(recipe.Ingredients))

	for _, line := range recipe.Ingredients {
		lines = append(lines, types.IngredientLineResponse{
			ID:              line.IngredientID,
			Name:            line.Ingredient.Name,
			MeasurementUnit: line.Ingredient.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	if anonymous {
		favorited = false
		inCart = false
	}

	return types.RecipeResponse{
		ID:               recipe.ID,
		Tags:             tags,
		Author:           userResponse(recipe.Author, false),
		Ingredients:      lines,
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
	}
}

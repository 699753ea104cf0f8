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

func ListTags(ctx *gin.Context) {
	tags, err := services.NewTagCatalog(db.DB).ListAll()

	if err != nil {
		logger.Error("failed to list tags", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tags"})
		return
	}

	response := make([]types.TagResponse, 0, len(tags))

	for _, tag := range tags {
		response = append(response, tagResponse(tag))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetTag(ctx *gin.Context) {
	tagID, err := utils.GetTagID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := services.NewTagCatalog(db.DB).Resolve(tagID)

	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tagResponse(*tag))
}

func tagResponse(tag models.Tag) types.TagResponse {
	return types.TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

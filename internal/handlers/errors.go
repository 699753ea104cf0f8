package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/internal/logger"
	"github.com/ladle-dev/ladle/internal/services"
)

// respondServiceError maps the services error taxonomy onto HTTP
// responses. Anything outside the taxonomy is a 500.
func respondServiceError(ctx *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{validationErr.Field: validationErr.Message}})
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrAuthorizationDenied):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "You cannot edit this recipe"})
	case errors.Is(err, services.ErrDuplicateRelation),
		errors.Is(err, services.ErrRelationNotFound),
		errors.Is(err, services.ErrSelfRelationForbidden),
		errors.Is(err, services.ErrEmptyCart):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("unhandled service error", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

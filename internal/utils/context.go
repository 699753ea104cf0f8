package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/internal/middleware"
	"github.com/ladle-dev/ladle/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// GetViewerID returns the authenticated user's id, or 0 for anonymous
// requests behind OptionalAuthMiddleware.
func GetViewerID(ctx *gin.Context) uint {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0
	}

	return user.ID
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/db"
	"github.com/ladle-dev/ladle/internal/auth"
	"github.com/ladle-dev/ladle/internal/models"
	"github.com/ladle-dev/ladle/internal/types"
)

type AuthenticatedUser struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := authenticate(ctx)

		if !ok {
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware authenticates when a token is present but lets
// anonymous requests through. Read endpoints use it so viewer-relative
// flags degrade to false instead of rejecting the request.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.GetHeader("Authorization") == "" {
			ctx.Next()
			return
		}

		user, ok := authenticate(ctx)

		if !ok {
			return
		}

		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

func authenticate(ctx *gin.Context) (AuthenticatedUser, bool) {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is required"})
		return AuthenticatedUser{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)

	if len(parts) != 2 || parts[0] != "Bearer" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
		return AuthenticatedUser{}, false
	}

	token, err := auth.VerifyJWT(parts[1])

	if err != nil || !token.Valid {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return AuthenticatedUser{}, false
	}

	userID, err := auth.UserIDFromToken(token)

	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return AuthenticatedUser{}, false
	}

	var user models.User

	if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return AuthenticatedUser{}, false
	}

	return AuthenticatedUser{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, true
}

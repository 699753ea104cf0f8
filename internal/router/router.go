package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ladle-dev/ladle/internal/handlers"
	"github.com/ladle-dev/ladle/internal/middleware"
	"github.com/ladle-dev/ladle/internal/types"
)

func NewRouter(mediaDir string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/media/recipes", mediaDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		users := api.Group("/users")
		{
			users.GET("", middleware.OptionalAuthMiddleware(), handlers.ListUsers)
			users.GET("/subscriptions", middleware.AuthMiddleware(), handlers.ListSubscriptions)
			users.GET("/:user_id", middleware.OptionalAuthMiddleware(), handlers.GetUser)
			users.POST("/:user_id/subscribe", middleware.AuthMiddleware(), handlers.Subscribe)
			users.DELETE("/:user_id/subscribe", middleware.AuthMiddleware(), handlers.Unsubscribe)
		}

		tags := api.Group("/tags")
		{
			tags.GET("", handlers.ListTags)
			tags.GET("/:tag_id", handlers.GetTag)
		}

		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", handlers.ListIngredients)
			ingredients.GET("/:ingredient_id", handlers.GetIngredient)
		}

		recipes := api.Group("/recipes")
		{
			recipes.GET("", middleware.OptionalAuthMiddleware(), handlers.ListRecipes)
			recipes.POST("", middleware.AuthMiddleware(), handlers.CreateRecipe)
			recipes.GET("/download_shopping_cart", middleware.AuthMiddleware(), handlers.DownloadShoppingCart)
			recipes.GET("/:recipe_id", middleware.OptionalAuthMiddleware(), handlers.GetRecipe)
			recipes.PUT("/:recipe_id", middleware.AuthMiddleware(), handlers.UpdateRecipe)
			recipes.DELETE("/:recipe_id", middleware.AuthMiddleware(), handlers.DeleteRecipe)
			recipes.POST("/:recipe_id/favorite", middleware.AuthMiddleware(), handlers.AddFavorite)
			recipes.DELETE("/:recipe_id/favorite", middleware.AuthMiddleware(), handlers.RemoveFavorite)
			recipes.POST("/:recipe_id/shopping_cart", middleware.AuthMiddleware(), handlers.AddToShoppingCart)
			recipes.DELETE("/:recipe_id/shopping_cart", middleware.AuthMiddleware(), handlers.RemoveFromShoppingCart)
		}
	}

	return r
}

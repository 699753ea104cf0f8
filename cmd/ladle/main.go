package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/ladle-dev/ladle/db"
	"github.com/ladle-dev/ladle/internal/auth"
	"github.com/ladle-dev/ladle/internal/handlers"
	"github.com/ladle-dev/ladle/internal/logger"
	"github.com/ladle-dev/ladle/internal/router"
	"github.com/ladle-dev/ladle/internal/seed"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	if err := logger.Init(os.Getenv("GIN_MODE")); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := auth.InitJWTSecret(); err != nil {
		logger.Fatal("failed to initialize JWT secret", "error", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		logger.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal("failed to migrate database", "error", err)
	}

	if err := seed.Tags(db.DB); err != nil {
		logger.Fatal("failed to seed tags", "error", err)
	}

	if fixtures := os.Getenv("INGREDIENT_FIXTURES"); fixtures != "" {
		if err := seed.Ingredients(db.DB, fixtures); err != nil {
			logger.Fatal("failed to seed ingredients", "error", err, "path", fixtures)
		}
	}

	mediaDir := os.Getenv("MEDIA_DIR")

	if mediaDir == "" {
		mediaDir = "media/recipes"
	}

	if err := handlers.InitImageStore(mediaDir); err != nil {
		logger.Fatal("failed to initialize image store", "error", err, "dir", mediaDir)
	}

	r := router.NewRouter(mediaDir)

	port := os.Getenv("PORT")

	if port == "" {
		port = "3000"
		logger.Info("PORT not set, defaulting to 3000")
	}

	if err := r.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", "error", err)
	}
}

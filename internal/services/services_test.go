package services

import (
	"testing"

	"github.com/ladle-dev/ladle/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// One shared in-memory database per test; a plain ":memory:" DSN
	// would give every pooled connection its own empty database.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCart{},
		&models.Follow{},
	)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func createTag(t *testing.T, db *gorm.DB, name, color, slug string) models.Tag {
	t.Helper()

	tag := models.Tag{Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(&tag).Error)

	return tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)

	return ingredient
}

// validInput builds a create/update input that passes every rule, for
// tests that then break one field at a time.
func validInput(tag models.Tag, lines ...IngredientLineInput) RecipeInput {
	return RecipeInput{
		Name:        "Borscht",
		Text:        "Simmer for an hour.",
		Image:       "/media/recipes/borscht.png",
		CookingTime: 60,
		TagIDs:      []uint{tag.ID},
		Ingredients: lines,
	}
}

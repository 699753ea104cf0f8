package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ladle-dev/ladle/internal/models"
	"github.com/ladle-dev/ladle/internal/types"
	"gorm.io/gorm"
)

type IngredientLineInput struct {
	IngredientID uint
	Amount       int
}

type RecipeInput struct {
	Name        string
	Text        string
	Image       string // reference returned by the image store
	CookingTime int
	TagIDs      []uint
	Ingredients []IngredientLineInput
}

type RecipeFilter struct {
	AuthorID    uint
	TagSlugs    []string
	FavoritedBy uint // recipes favorited by this user
	InCartOf    uint // recipes in this user's shopping cart
	Limit       int
	Offset      int
}

// RecipeComposer persists a recipe together with its tag set and
// ingredient lines as one atomic unit.
type RecipeComposer struct {
	DB *gorm.DB
}

func NewRecipeComposer(db *gorm.DB) *RecipeComposer {
	return &RecipeComposer{DB: db}
}

func (c *RecipeComposer) Create(authorID uint, in RecipeInput) (*models.Recipe, error) {
	var recipe models.Recipe

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		tags, lines, err := c.validate(tx, in)

		if err != nil {
			return err
		}

		recipe = models.Recipe{
			AuthorID:    authorID,
			Name:        in.Name,
			Image:       in.Image,
			Text:        in.Text,
			CookingTime: in.CookingTime,
		}

		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}

		return c.writeAssociations(tx, &recipe, tags, lines)
	})

	if err != nil {
		return nil, err
	}

	return c.Get(recipe.ID)
}

func (c *RecipeComposer) Update(recipeID, actorID uint, in RecipeInput) (*models.Recipe, error) {
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe

		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if recipe.AuthorID != actorID {
			return ErrAuthorizationDenied
		}

		tags, lines, err := c.validate(tx, in)

		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":         in.Name,
			"image":        in.Image,
			"text":         in.Text,
			"cooking_time": in.CookingTime,
		}

		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return err
		}

		// PUT semantics: drop both association sets and recreate them
		// from the submitted input.
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}

		return c.writeAssociations(tx, &recipe, tags, lines)
	})

	if err != nil {
		return nil, err
	}

	return c.Get(recipeID)
}

func (c *RecipeComposer) Delete(recipeID, actorID uint) error {
	return c.DB.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe

		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if recipe.AuthorID != actorID {
			return ErrAuthorizationDenied
		}

		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.ShoppingCart{}).Error; err != nil {
			return err
		}

		return tx.Delete(&recipe).Error
	})
}

func (c *RecipeComposer) Get(recipeID uint) (*models.Recipe, error) {
	var recipe models.Recipe

	err := c.preloaded(c.DB).First(&recipe, recipeID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &recipe, nil
}

func (c *RecipeComposer) List(filter RecipeFilter) ([]models.Recipe, error) {
	query := c.preloaded(c.DB).Order("recipes.created_at DESC, recipes.id DESC")

	if filter.AuthorID != 0 {
		query = query.Where("recipes.author_id = ?", filter.AuthorID)
	}

	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs).
			Distinct("recipes.*")
	}

	if filter.FavoritedBy != 0 {
		query = query.Joins(
			"JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?",
			filter.FavoritedBy)
	}

	if filter.InCartOf != 0 {
		query = query.Joins(
			"JOIN shopping_carts ON shopping_carts.recipe_id = recipes.id AND shopping_carts.user_id = ?",
			filter.InCartOf)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var recipes []models.Recipe

	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}

	return recipes, nil
}

// FlagSets returns the ids of recipes the viewer has favorited and
// carted, one query per relation. Anonymous viewers (id 0) get empty
// sets.
func (c *RecipeComposer) FlagSets(viewerID uint) (map[uint]bool, map[uint]bool, error) {
	favorited := make(map[uint]bool)
	inCart := make(map[uint]bool)

	if viewerID == 0 {
		return favorited, inCart, nil
	}

	var favoriteIDs []uint

	if err := c.DB.Model(&models.Favorite{}).Where("user_id = ?", viewerID).Pluck("recipe_id", &favoriteIDs).Error; err != nil {
		return nil, nil, err
	}

	for _, id := range favoriteIDs {
		favorited[id] = true
	}

	var cartIDs []uint

	if err := c.DB.Model(&models.ShoppingCart{}).Where("user_id = ?", viewerID).Pluck("recipe_id", &cartIDs).Error; err != nil {
		return nil, nil, err
	}

	for _, id := range cartIDs {
		inCart[id] = true
	}

	return favorited, inCart, nil
}

func (c *RecipeComposer) preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Ingredient")
}

// validate applies the composition rules in order, first violation
// wins, and resolves tag/ingredient ids against the catalogs inside the
// caller's transaction.
func (c *RecipeComposer) validate(tx *gorm.DB, in RecipeInput) ([]models.Tag, []models.RecipeIngredient, error) {
	if in.Name == "" {
		return nil, nil, NewValidationError("name", "Recipe name must not be empty")
	}

	// Characters, not bytes: multibyte names up to the cap are valid.
	if utf8.RuneCountInString(in.Name) > types.MaxRecipeNameLength {
		return nil, nil, NewValidationError("name", fmt.Sprintf("Recipe name must be at most %d characters", types.MaxRecipeNameLength))
	}

	if len(in.TagIDs) == 0 {
		return nil, nil, NewValidationError("tags", "Specify at least one tag")
	}

	tagCatalog := NewTagCatalog(tx)
	tags := make([]models.Tag, 0, len(in.TagIDs))

	for _, tagID := range in.TagIDs {
		tag, err := tagCatalog.Resolve(tagID)

		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil, NewValidationError("tags", fmt.Sprintf("Tag %d does not exist", tagID))
			}
			return nil, nil, err
		}

		tags = append(tags, *tag)
	}

	if len(in.Ingredients) == 0 {
		return nil, nil, NewValidationError("ingredients", "Specify at least one ingredient")
	}

	ingredientCatalog := NewIngredientCatalog(tx)
	seen := make(map[uint]bool, len(in.Ingredients))
	lines := make([]models.RecipeIngredient, 0, len(in.Ingredients))

	for _, line := range in.Ingredients {
		if line.Amount < 1 {
			return nil, nil, NewValidationError("ingredients", "Ingredient amount must be at least 1")
		}

		if _, err := ingredientCatalog.Resolve(line.IngredientID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, nil, NewValidationError("ingredients", fmt.Sprintf("Ingredient %d does not exist", line.IngredientID))
			}
			return nil, nil, err
		}

		if seen[line.IngredientID] {
			return nil, nil, NewValidationError("ingredients", "Ingredients must be unique within a recipe")
		}

		seen[line.IngredientID] = true

		lines = append(lines, models.RecipeIngredient{
			IngredientID: line.IngredientID,
			Amount:       line.Amount,
		})
	}

	if in.CookingTime < 1 {
		return nil, nil, NewValidationError("cooking_time", "Cooking time must be at least 1 minute")
	}

	if in.Image == "" {
		return nil, nil, NewValidationError("image", "Recipe image is required")
	}

	return tags, lines, nil
}

// writeAssociations replaces the tag set and bulk-inserts the
// ingredient lines for a recipe that already has its row written.
func (c *RecipeComposer) writeAssociations(tx *gorm.DB, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error {
	if err := tx.Model(recipe).Association("Tags").Replace(tags); err != nil {
		return err
	}

	for i := range lines {
		lines[i].RecipeID = recipe.ID
	}

	return tx.Create(&lines).Error
}

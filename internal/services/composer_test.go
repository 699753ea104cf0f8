package services

import (
	"strings"
	"testing"

	"github.com/ladle-dev/ladle/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecipe(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	breakfast := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	dinner := createTag(t, db, "dinner", "#2da3e2", "dinner")
	potato := createIngredient(t, db, "potato", "g")
	onion := createIngredient(t, db, "onion", "pcs")

	composer := NewRecipeComposer(db)

	in := validInput(breakfast,
		IngredientLineInput{IngredientID: potato.ID, Amount: 500},
		IngredientLineInput{IngredientID: onion.ID, Amount: 2},
	)
	in.TagIDs = []uint{breakfast.ID, dinner.ID}

	recipe, err := composer.Create(author.ID, in)
	require.NoError(t, err)

	assert.Equal(t, author.ID, recipe.AuthorID)
	assert.Equal(t, "Borscht", recipe.Name)
	assert.Len(t, recipe.Tags, 2)
	require.Len(t, recipe.Ingredients, 2)

	amounts := map[uint]int{}
	for _, line := range recipe.Ingredients {
		amounts[line.IngredientID] = line.Amount
	}
	assert.Equal(t, map[uint]int{potato.ID: 500, onion.ID: 2}, amounts)
}

func TestCreateRecipeValidationOrder(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	potato := createIngredient(t, db, "potato", "g")

	composer := NewRecipeComposer(db)
	line := IngredientLineInput{IngredientID: potato.ID, Amount: 1}

	tests := []struct {
		name    string
		mutate  func(in *RecipeInput)
		field   string
		message string
	}{
		{
			name:   "empty name",
			mutate: func(in *RecipeInput) { in.Name = "" },
			field:  "name",
		},
		{
			name:   "name too long",
			mutate: func(in *RecipeInput) { in.Name = strings.Repeat("x", 201) },
			field:  "name",
		},
		{
			name:   "no tags",
			mutate: func(in *RecipeInput) { in.TagIDs = nil },
			field:  "tags",
		},
		{
			name:   "unknown tag",
			mutate: func(in *RecipeInput) { in.TagIDs = []uint{9999} },
			field:  "tags",
		},
		{
			name:   "no ingredients",
			mutate: func(in *RecipeInput) { in.Ingredients = nil },
			field:  "ingredients",
		},
		{
			name: "zero amount",
			mutate: func(in *RecipeInput) {
				in.Ingredients = []IngredientLineInput{{IngredientID: potato.ID, Amount: 0}}
			},
			field:   "ingredients",
			message: "Ingredient amount must be at least 1",
		},
		{
			name: "unknown ingredient",
			mutate: func(in *RecipeInput) {
				in.Ingredients = []IngredientLineInput{{IngredientID: 9999, Amount: 1}}
			},
			field: "ingredients",
		},
		{
			name: "duplicate ingredient",
			mutate: func(in *RecipeInput) {
				in.Ingredients = []IngredientLineInput{
					{IngredientID: potato.ID, Amount: 2},
					{IngredientID: potato.ID, Amount: 3},
				}
			},
			field:   "ingredients",
			message: "Ingredients must be unique within a recipe",
		},
		{
			name:   "zero cooking time",
			mutate: func(in *RecipeInput) { in.CookingTime = 0 },
			field:  "cooking_time",
		},
		{
			name:   "missing image",
			mutate: func(in *RecipeInput) { in.Image = "" },
			field:  "image",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(tag, line)
			tc.mutate(&in)

			_, err := composer.Create(author.ID, in)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.field, validationErr.Field)
			if tc.message != "" {
				assert.Equal(t, tc.message, validationErr.Message)
			}
		})
	}

	// Nothing may survive a failed create.
	var recipeCount, lineCount int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&lineCount).Error)
	assert.Zero(t, recipeCount)
	assert.Zero(t, lineCount)
}

func TestCreateRecipeNameLengthCountsCharacters(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	potato := createIngredient(t, db, "potato", "g")

	composer := NewRecipeComposer(db)
	line := IngredientLineInput{IngredientID: potato.ID, Amount: 1}

	// 200 Cyrillic characters are 400 bytes but still within the cap.
	in := validInput(tag, line)
	in.Name = strings.Repeat("щ", 200)

	recipe, err := composer.Create(author.ID, in)
	require.NoError(t, err)
	assert.Equal(t, in.Name, recipe.Name)

	in = validInput(tag, line)
	in.Name = strings.Repeat("щ", 201)

	_, err = composer.Create(author.ID, in)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "name", validationErr.Field)
}

func TestUpdateRecipeReplacesAssociations(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	breakfast := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	dinner := createTag(t, db, "dinner", "#2da3e2", "dinner")
	ingredientA := createIngredient(t, db, "potato", "g")
	ingredientB := createIngredient(t, db, "onion", "pcs")

	composer := NewRecipeComposer(db)

	recipe, err := composer.Create(author.ID, validInput(breakfast,
		IngredientLineInput{IngredientID: ingredientA.ID, Amount: 2}))
	require.NoError(t, err)

	in := validInput(dinner, IngredientLineInput{IngredientID: ingredientB.ID, Amount: 3})
	in.Name = "Updated borscht"

	updated, err := composer.Update(recipe.ID, author.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Updated borscht", updated.Name)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, dinner.ID, updated.Tags[0].ID)

	// Replacement, not merge: only {B:3} remains.
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, ingredientB.ID, updated.Ingredients[0].IngredientID)
	assert.Equal(t, 3, updated.Ingredients[0].Amount)

	var lineCount int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&lineCount).Error)
	assert.EqualValues(t, 1, lineCount)
}

func TestUpdateRecipeByNonAuthor(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	intruder := createUser(t, db, "mallory")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	potato := createIngredient(t, db, "potato", "g")

	composer := NewRecipeComposer(db)

	recipe, err := composer.Create(author.ID, validInput(tag,
		IngredientLineInput{IngredientID: potato.ID, Amount: 2}))
	require.NoError(t, err)

	in := validInput(tag, IngredientLineInput{IngredientID: potato.ID, Amount: 9})
	in.Name = "Hijacked"

	_, err = composer.Update(recipe.ID, intruder.ID, in)
	require.ErrorIs(t, err, ErrAuthorizationDenied)

	// The recipe is untouched.
	unchanged, err := composer.Get(recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Borscht", unchanged.Name)
	require.Len(t, unchanged.Ingredients, 1)
	assert.Equal(t, 2, unchanged.Ingredients[0].Amount)
}

func TestUpdateMissingRecipe(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	potato := createIngredient(t, db, "potato", "g")

	_, err := NewRecipeComposer(db).Update(42, author.ID,
		validInput(tag, IngredientLineInput{IngredientID: potato.ID, Amount: 1}))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteRecipe(t *testing.T) {
	db := newTestDB(t)
	author := createUser(t, db, "alice")
	other := createUser(t, db, "bob")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	potato := createIngredient(t, db, "potato", "g")

	composer := NewRecipeComposer(db)

	recipe, err := composer.Create(author.ID, validInput(tag,
		IngredientLineInput{IngredientID: potato.ID, Amount: 2}))
	require.NoError(t, err)

	require.NoError(t, NewRelationToggle(db, RelationFavorite).Add(other.ID, recipe.ID))

	require.ErrorIs(t, composer.Delete(recipe.ID, other.ID), ErrAuthorizationDenied)
	require.NoError(t, composer.Delete(recipe.ID, author.ID))

	_, err = composer.Get(recipe.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// Lines and relation edges died with the recipe.
	var lineCount, favoriteCount int64
	require.NoError(t, db.Model(&models.RecipeIngredient{}).Count(&lineCount).Error)
	require.NoError(t, db.Model(&models.Favorite{}).Count(&favoriteCount).Error)
	assert.Zero(t, lineCount)
	assert.Zero(t, favoriteCount)
}

func TestListFiltersAndFlags(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	breakfast := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	dinner := createTag(t, db, "dinner", "#2da3e2", "dinner")
	potato := createIngredient(t, db, "potato", "g")

	composer := NewRecipeComposer(db)

	aliceIn := validInput(breakfast, IngredientLineInput{IngredientID: potato.ID, Amount: 1})
	aliceIn.Name = "Alice breakfast"
	aliceRecipe, err := composer.Create(alice.ID, aliceIn)
	require.NoError(t, err)

	bobIn := validInput(dinner, IngredientLineInput{IngredientID: potato.ID, Amount: 1})
	bobIn.Name = "Bob dinner"
	bobRecipe, err := composer.Create(bob.ID, bobIn)
	require.NoError(t, err)

	require.NoError(t, NewRelationToggle(db, RelationFavorite).Add(bob.ID, aliceRecipe.ID))
	require.NoError(t, NewRelationToggle(db, RelationCart).Add(bob.ID, bobRecipe.ID))

	byAuthor, err := composer.List(RecipeFilter{AuthorID: alice.ID})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, aliceRecipe.ID, byAuthor[0].ID)

	byTag, err := composer.List(RecipeFilter{TagSlugs: []string{"dinner"}})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, bobRecipe.ID, byTag[0].ID)

	byFavorite, err := composer.List(RecipeFilter{FavoritedBy: bob.ID})
	require.NoError(t, err)
	require.Len(t, byFavorite, 1)
	assert.Equal(t, aliceRecipe.ID, byFavorite[0].ID)

	byCart, err := composer.List(RecipeFilter{InCartOf: bob.ID})
	require.NoError(t, err)
	require.Len(t, byCart, 1)
	assert.Equal(t, bobRecipe.ID, byCart[0].ID)

	favorited, inCart, err := composer.FlagSets(bob.ID)
	require.NoError(t, err)
	assert.True(t, favorited[aliceRecipe.ID])
	assert.False(t, favorited[bobRecipe.ID])
	assert.True(t, inCart[bobRecipe.ID])
	assert.False(t, inCart[aliceRecipe.ID])

	// Flags are stable without intervening mutations.
	favoritedAgain, inCartAgain, err := composer.FlagSets(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, favorited, favoritedAgain)
	assert.Equal(t, inCart, inCartAgain)

	// Anonymous viewers get empty sets.
	favorited, inCart, err = composer.FlagSets(0)
	require.NoError(t, err)
	assert.Empty(t, favorited)
	assert.Empty(t, inCart)
}

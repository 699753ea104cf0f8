package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSumsAndSorts(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	potato := createIngredient(t, db, "potato", "g")
	onion := createIngredient(t, db, "onion", "pcs")

	composer := NewRecipeComposer(db)

	first, err := composer.Create(alice.ID, validInput(tag,
		IngredientLineInput{IngredientID: potato.ID, Amount: 500}))
	require.NoError(t, err)

	secondIn := validInput(tag,
		IngredientLineInput{IngredientID: potato.ID, Amount: 300},
		IngredientLineInput{IngredientID: onion.ID, Amount: 2})
	secondIn.Name = "Onion soup"
	second, err := composer.Create(alice.ID, secondIn)
	require.NoError(t, err)

	cart := NewRelationToggle(db, RelationCart)
	require.NoError(t, cart.Add(bob.ID, first.ID))
	require.NoError(t, cart.Add(bob.ID, second.ID))

	items, err := NewShoppingListAggregator(db).Aggregate(bob.ID)
	require.NoError(t, err)

	assert.Equal(t, []ShoppingItem{
		{Name: "onion", MeasurementUnit: "pcs", Amount: 2},
		{Name: "potato", MeasurementUnit: "g", Amount: 800},
	}, items)
}

func TestAggregateMergesByNameAndUnit(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")

	// Two distinct ingredient rows sharing name+unit merge; a third
	// sharing only the name stays separate.
	saltA := createIngredient(t, db, "salt", "g")
	saltB := createIngredient(t, db, "salt", "g")
	saltPinch := createIngredient(t, db, "salt", "pinch")

	composer := NewRecipeComposer(db)

	first, err := composer.Create(alice.ID, validInput(tag,
		IngredientLineInput{IngredientID: saltA.ID, Amount: 10}))
	require.NoError(t, err)

	secondIn := validInput(tag,
		IngredientLineInput{IngredientID: saltB.ID, Amount: 5},
		IngredientLineInput{IngredientID: saltPinch.ID, Amount: 1})
	secondIn.Name = "Salted salt"
	second, err := composer.Create(alice.ID, secondIn)
	require.NoError(t, err)

	cart := NewRelationToggle(db, RelationCart)
	require.NoError(t, cart.Add(alice.ID, first.ID))
	require.NoError(t, cart.Add(alice.ID, second.ID))

	items, err := NewShoppingListAggregator(db).Aggregate(alice.ID)
	require.NoError(t, err)

	assert.Equal(t, []ShoppingItem{
		{Name: "salt", MeasurementUnit: "g", Amount: 15},
		{Name: "salt", MeasurementUnit: "pinch", Amount: 1},
	}, items)
}

func TestAggregateEmptyCart(t *testing.T) {
	db := newTestDB(t)
	bob := createUser(t, db, "bob")

	_, err := NewShoppingListAggregator(db).Aggregate(bob.ID)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestAggregateScopedToUser(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	tag := createTag(t, db, "breakfast", "#48e22d", "breakfast")
	potato := createIngredient(t, db, "potato", "g")

	recipe, err := NewRecipeComposer(db).Create(alice.ID, validInput(tag,
		IngredientLineInput{IngredientID: potato.ID, Amount: 100}))
	require.NoError(t, err)

	require.NoError(t, NewRelationToggle(db, RelationCart).Add(alice.ID, recipe.ID))

	// Alice's cart has entries but Bob's is still empty.
	_, err = NewShoppingListAggregator(db).Aggregate(bob.ID)
	require.ErrorIs(t, err, ErrEmptyCart)

	items, err := NewShoppingListAggregator(db).Aggregate(alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 100, items[0].Amount)
}

package types

// UserResponse is the public view of a user. IsSubscribed is relative
// to the viewer and false for anonymous requests.
type UserResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// IngredientLineResponse is an ingredient as it appears inside a
// recipe, with the line amount.
type IngredientLineResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

type RecipeResponse struct {
	ID               uint                     `json:"id"`
	Tags             []TagResponse            `json:"tags"`
	Author           UserResponse             `json:"author"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

// ShortRecipeResponse is the abbreviated recipe used in favorite/cart
// confirmations and subscription listings.
type ShortRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// SubscriptionResponse is a followed author with a preview of their
// recipes.
type SubscriptionResponse struct {
	UserResponse
	Recipes      []ShortRecipeResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

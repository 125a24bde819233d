package recipes

type recipeInput struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

type recipeRecord struct {
	ID          int64  `json:"id" validate:"gt=0"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
}

type setRecipesRequest struct {
	Recipes []recipeRecord `json:"recipes" validate:"required,dive"`
}

type searchRequest struct {
	Term string `json:"term"`
}

type createRecipeResponse struct {
	Recipe Recipe `json:"recipe"`
	State  State  `json:"state"`
}

type recipesResponse struct {
	Recipes         []Recipe `json:"recipes"`
	FilteredRecipes []Recipe `json:"filteredRecipes"`
	SearchTerm      string   `json:"searchTerm"`
}

type favoritesResponse struct {
	Favorites []int64  `json:"favorites"`
	Recipes   []Recipe `json:"recipes"`
}

type recommendationsResponse struct {
	Recommendations []Recipe `json:"recommendations"`
	Favorites       int      `json:"favorites"`
}

func toRecipes(records []recipeRecord) []Recipe {
	out := make([]Recipe, 0, len(records))
	for _, r := range records {
		out = append(out, Recipe{ID: r.ID, Title: r.Title, Description: r.Description})
	}
	return out
}

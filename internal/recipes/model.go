package recipes

// Recipe is a single user recipe record.
type Recipe struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// State is a point-in-time snapshot of the store aggregate.
type State struct {
	Recipes         []Recipe `json:"recipes"`
	SearchTerm      string   `json:"searchTerm"`
	FilteredRecipes []Recipe `json:"filteredRecipes"`
	Favorites       []int64  `json:"favorites"`
	Recommendations []Recipe `json:"recommendations"`
}

func emptyState() State {
	return State{
		Recipes:         []Recipe{},
		FilteredRecipes: []Recipe{},
		Favorites:       []int64{},
		Recommendations: []Recipe{},
	}
}

func (s State) clone() State {
	return State{
		Recipes:         cloneRecipes(s.Recipes),
		SearchTerm:      s.SearchTerm,
		FilteredRecipes: cloneRecipes(s.FilteredRecipes),
		Favorites:       append(make([]int64, 0, len(s.Favorites)), s.Favorites...),
		Recommendations: cloneRecipes(s.Recommendations),
	}
}

// FavoriteRecipes resolves favorites to recipes in favorites order. Ids with
// no matching recipe are dropped; duplicate favorites resolve twice.
func (s State) FavoriteRecipes() []Recipe {
	out := make([]Recipe, 0, len(s.Favorites))
	for _, id := range s.Favorites {
		if recipe, ok := findRecipe(s.Recipes, id); ok {
			out = append(out, recipe)
		}
	}
	return out
}

// DanglingFavorites lists favorite ids that no longer resolve to a recipe.
func (s State) DanglingFavorites() []int64 {
	var out []int64
	for _, id := range s.Favorites {
		if _, ok := findRecipe(s.Recipes, id); !ok {
			out = append(out, id)
		}
	}
	return out
}

func findRecipe(items []Recipe, id int64) (Recipe, bool) {
	for _, recipe := range items {
		if recipe.ID == id {
			return recipe, true
		}
	}
	return Recipe{}, false
}

func cloneRecipes(in []Recipe) []Recipe {
	return append(make([]Recipe, 0, len(in)), in...)
}

package recipes

import "strings"

// Matches reports whether term is a case-insensitive substring of the recipe's
// title or description. An empty term matches every recipe.
func Matches(recipe Recipe, term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(recipe.Title), needle) ||
		strings.Contains(strings.ToLower(recipe.Description), needle)
}

// Filter returns the subsequence of items matching term, preserving order.
func Filter(items []Recipe, term string) []Recipe {
	out := make([]Recipe, 0, len(items))
	for _, recipe := range items {
		if Matches(recipe, term) {
			out = append(out, recipe)
		}
	}
	return out
}

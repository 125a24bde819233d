package recipes

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

const (
	// MaxRecommendations caps the recommendation list.
	MaxRecommendations = 5

	// randomPickThreshold yields a ~30% inclusion rate when there are no favorites.
	randomPickThreshold = 0.7

	// Shared words must be longer than this many characters.
	minSharedWordLen = 3
)

// Recommend derives up to MaxRecommendations recipes from items, skipping
// anything already in favorites. With no favorites each candidate is kept
// with ~30% probability drawn from rng; otherwise a candidate is kept when it
// shares a word longer than three characters with any favorited recipe.
// Results follow the order of items.
func Recommend(items []Recipe, favorites []int64, rng *rand.Rand) []Recipe {
	out := make([]Recipe, 0, MaxRecommendations)
	if len(items) == 0 {
		return out
	}

	var favoriteTexts [][]string
	if len(favorites) > 0 {
		for _, recipe := range items {
			if containsID(favorites, recipe.ID) {
				favoriteTexts = append(favoriteTexts, words(recipe))
			}
		}
	}

	for _, recipe := range items {
		if len(out) == MaxRecommendations {
			break
		}
		if containsID(favorites, recipe.ID) {
			continue
		}
		if len(favorites) == 0 {
			if draw(rng) > randomPickThreshold {
				out = append(out, recipe)
			}
			continue
		}
		candidate := words(recipe)
		for _, favWords := range favoriteTexts {
			if sharesLongWord(favWords, candidate) {
				out = append(out, recipe)
				break
			}
		}
	}
	return out
}

func draw(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

func words(recipe Recipe) []string {
	return strings.Fields(strings.ToLower(recipe.Title + " " + recipe.Description))
}

func sharesLongWord(favWords, candidate []string) bool {
	for _, word := range favWords {
		if utf8.RuneCountInString(word) <= minSharedWordLen {
			continue
		}
		for _, other := range candidate {
			if other == word {
				return true
			}
		}
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

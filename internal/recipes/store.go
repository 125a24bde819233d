package recipes

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Operation names passed to hooks.
const (
	OpAddRecipe               = "add_recipe"
	OpDeleteRecipe            = "delete_recipe"
	OpUpdateRecipe            = "update_recipe"
	OpSetRecipes              = "set_recipes"
	OpSetSearchTerm           = "set_search_term"
	OpFilterRecipes           = "filter_recipes"
	OpAddFavorite             = "add_favorite"
	OpRemoveFavorite          = "remove_favorite"
	OpGenerateRecommendations = "generate_recommendations"
)

// Hook observes the state produced by a completed mutation.
type Hook func(op string, state State)

// Store owns the recipe aggregate and keeps its derived views in sync.
// A single mutex covers the whole aggregate so no caller ever observes a
// partially applied mutation.
type Store struct {
	mu     sync.RWMutex
	state  State
	rng    *rand.Rand
	lastID int64
	hooks  []Hook
}

// NewStore returns an empty store. rng drives the random branch of
// recommendation generation; pass NewRand with a fixed seed for repeatable
// output.
func NewStore(rng *rand.Rand) *Store {
	if rng == nil {
		rng = NewRand(0)
	}
	return &Store{state: emptyState(), rng: rng}
}

// NewRand builds a PCG-backed source. A zero seed is replaced by the current time.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// OnChange registers a hook invoked after every mutation, outside the lock.
func (s *Store) OnChange(hook Hook) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	s.hooks = append(s.hooks, hook)
	s.mu.Unlock()
}

// State returns a copy of the current aggregate.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Recipe looks up a recipe by id.
func (s *Store) Recipe(id int64) (Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findRecipe(s.state.Recipes, id)
}

// IsFavorite reports whether id is present in favorites.
func (s *Store) IsFavorite(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return containsID(s.state.Favorites, id)
}

// FavoriteRecipes resolves the current favorites, dropping dangling ids.
func (s *Store) FavoriteRecipes() []Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.FavoriteRecipes()
}

// NextID issues an id greater than any id issued before and any id
// currently held in recipes.
func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.lastID
	for _, recipe := range s.state.Recipes {
		if recipe.ID > next {
			next = recipe.ID
		}
	}
	next++
	s.lastID = next
	return next
}

// AddRecipe appends recipe without checking for duplicate ids.
func (s *Store) AddRecipe(recipe Recipe) State {
	return s.mutate(OpAddRecipe, func(st *State) {
		st.Recipes = append(st.Recipes, recipe)
		st.FilteredRecipes = Filter(st.Recipes, st.SearchTerm)
	})
}

// DeleteRecipe removes the first recipe with the given id. Favorites and
// recommendations are left untouched, so a favorite may dangle afterwards.
func (s *Store) DeleteRecipe(id int64) State {
	return s.mutate(OpDeleteRecipe, func(st *State) {
		for i, recipe := range st.Recipes {
			if recipe.ID == id {
				next := make([]Recipe, 0, len(st.Recipes)-1)
				next = append(next, st.Recipes[:i]...)
				st.Recipes = append(next, st.Recipes[i+1:]...)
				break
			}
		}
		st.FilteredRecipes = Filter(st.Recipes, st.SearchTerm)
	})
}

// UpdateRecipe replaces the recipe sharing recipe.ID. Unknown ids are a no-op.
func (s *Store) UpdateRecipe(recipe Recipe) State {
	return s.mutate(OpUpdateRecipe, func(st *State) {
		next := cloneRecipes(st.Recipes)
		for i := range next {
			if next[i].ID == recipe.ID {
				next[i] = recipe
			}
		}
		st.Recipes = next
		st.FilteredRecipes = Filter(st.Recipes, st.SearchTerm)
	})
}

// SetRecipes replaces the whole collection.
func (s *Store) SetRecipes(items []Recipe) State {
	return s.mutate(OpSetRecipes, func(st *State) {
		st.Recipes = cloneRecipes(items)
		st.FilteredRecipes = Filter(st.Recipes, st.SearchTerm)
	})
}

// SetSearchTerm replaces the search term and refilters.
func (s *Store) SetSearchTerm(term string) State {
	return s.mutate(OpSetSearchTerm, func(st *State) {
		st.SearchTerm = term
		st.FilteredRecipes = Filter(st.Recipes, st.SearchTerm)
	})
}

// FilterRecipes recomputes the filtered view from the current inputs.
func (s *Store) FilterRecipes() State {
	return s.mutate(OpFilterRecipes, func(st *State) {
		st.FilteredRecipes = Filter(st.Recipes, st.SearchTerm)
	})
}

// AddFavorite appends id to favorites. Repeated calls produce duplicates.
func (s *Store) AddFavorite(id int64) State {
	return s.mutate(OpAddFavorite, func(st *State) {
		st.Favorites = append(st.Favorites, id)
	})
}

// RemoveFavorite drops every occurrence of id from favorites.
func (s *Store) RemoveFavorite(id int64) State {
	return s.mutate(OpRemoveFavorite, func(st *State) {
		next := make([]int64, 0, len(st.Favorites))
		for _, fav := range st.Favorites {
			if fav != id {
				next = append(next, fav)
			}
		}
		st.Favorites = next
	})
}

// GenerateRecommendations recomputes the recommendation list.
func (s *Store) GenerateRecommendations() State {
	return s.mutate(OpGenerateRecommendations, func(st *State) {
		st.Recommendations = Recommend(st.Recipes, st.Favorites, s.rng)
	})
}

func (s *Store) mutate(op string, apply func(st *State)) State {
	snapshot, _ := s.mutateIf(op, func(st *State) bool {
		apply(st)
		return true
	})
	return snapshot
}

// mutateIf runs apply under the write lock and notifies hooks only when
// apply reports a change.
func (s *Store) mutateIf(op string, apply func(st *State) bool) (State, bool) {
	snapshot, changed, hooks := s.applyLocked(apply)

	if len(hooks) > 0 {
		observed := snapshot.clone()
		for _, hook := range hooks {
			hook(op, observed)
		}
	}
	return snapshot, changed
}

func (s *Store) applyLocked(apply func(st *State) bool) (State, bool, []Hook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := apply(&s.state)
	var hooks []Hook
	if changed {
		hooks = append(hooks, s.hooks...)
	}
	return s.state.clone(), changed, hooks
}

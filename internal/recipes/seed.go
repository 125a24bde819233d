package recipes

// SampleRecipes returns the fixed sample collection used to seed an empty store.
func SampleRecipes() []Recipe {
	return []Recipe{
		{
			ID:          1,
			Title:       "Classic Chocolate Chip Cookies",
			Description: "Delicious homemade chocolate chip cookies with crispy edges and chewy centers. Perfect for any occasion and loved by all ages. Made with real vanilla and premium chocolate chips.",
		},
		{
			ID:          2,
			Title:       "Creamy Chicken Alfredo Pasta",
			Description: "Rich and creamy chicken alfredo pasta with tender grilled chicken, fresh parmesan cheese, and perfectly cooked fettuccine noodles in a garlic cream sauce.",
		},
		{
			ID:          3,
			Title:       "Fresh Garden Salad",
			Description: "A healthy and refreshing garden salad with mixed greens, cherry tomatoes, cucumbers, carrots, and a light vinaigrette dressing. Perfect for lunch or as a side dish.",
		},
		{
			ID:          4,
			Title:       "Spicy Beef Tacos",
			Description: "Authentic Mexican-style beef tacos with seasoned ground beef, fresh lettuce, diced tomatoes, cheese, and spicy salsa in soft flour tortillas.",
		},
		{
			ID:          5,
			Title:       "Homemade Pizza Margherita",
			Description: "Traditional Italian pizza margherita with fresh mozzarella, basil leaves, and tomato sauce on a crispy homemade crust. Simple yet incredibly flavorful.",
		},
		{
			ID:          6,
			Title:       "Banana Chocolate Smoothie",
			Description: "Healthy and delicious smoothie made with ripe bananas, cocoa powder, almond milk, and a touch of honey. Perfect for breakfast or post-workout nutrition.",
		},
		{
			ID:          7,
			Title:       "Grilled Salmon with Lemon",
			Description: "Perfectly grilled salmon fillet with fresh lemon juice, herbs, and olive oil. A healthy and protein-rich dinner option that's ready in under 20 minutes.",
		},
		{
			ID:          8,
			Title:       "Vegetable Stir Fry",
			Description: "Colorful vegetable stir fry with broccoli, bell peppers, carrots, and snap peas in a savory soy-ginger sauce. Quick, healthy, and full of nutrients.",
		},
	}
}

// SeedIfEmpty loads SampleRecipes when the store holds no recipes and
// reports whether it did. The emptiness check and the load happen under one lock.
func SeedIfEmpty(store *Store) bool {
	if store == nil {
		return false
	}
	_, seeded := store.mutateIf(OpSetRecipes, func(st *State) bool {
		if len(st.Recipes) > 0 {
			return false
		}
		st.Recipes = SampleRecipes()
		st.FilteredRecipes = Filter(st.Recipes, st.SearchTerm)
		return true
	})
	return seeded
}

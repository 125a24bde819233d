package health

// Service encapsulates health-related checks.
type Service struct {
	// RecipeCount reports how many recipes the store holds. Optional.
	RecipeCount func() int
}

// NewService constructs a new health service.
func NewService(recipeCount func() int) *Service {
	return &Service{RecipeCount: recipeCount}
}

// Status returns a simple health payload.
func (s *Service) Status() map[string]any {
	out := map[string]any{"ok": true}
	if s != nil && s.RecipeCount != nil {
		out["recipes"] = s.RecipeCount()
	}
	return out
}

package bootstrap

import (
	"strings"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/recipes"
	"recipe-backend/internal/services/health"
	"recipe-backend/internal/shared/config"
	"recipe-backend/internal/shared/metrics"
	"recipe-backend/internal/shared/server"
	"recipe-backend/internal/shared/server/middleware"
	"recipe-backend/internal/shared/telemetry"
)

// App holds shared dependencies. It is the single owner of the recipe store;
// consumers receive the store through it rather than through a global.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Store         *recipes.Store
	RecipeHandler *recipes.Handler
	Health        *health.Service
}

// Build wires the store, observers and HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := recipes.NewStore(recipes.NewRand(cfg.Recommend.Seed))
	store.OnChange(observeStore)

	if cfg.SeedSamples && recipes.SeedIfEmpty(store) {
		telemetry.Info("store.seeded", map[string]any{
			"recipes": len(recipes.SampleRecipes()),
		})
	}

	app := &App{
		Config:        cfg,
		Store:         store,
		RecipeHandler: recipes.NewHandler(store),
		Health: health.NewService(func() int {
			return len(store.State().Recipes)
		}),
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		RecipeHandler: app.RecipeHandler,
		Health:        app.Health,
		RateLimiter:   middleware.NewRateLimiter(nil),
	})

	return app, nil
}

func observeStore(op string, st recipes.State) {
	dangling := st.DanglingFavorites()
	metrics.ObserveStoreMutation(op, metrics.StoreCounts{
		Recipes:           len(st.Recipes),
		Filtered:          len(st.FilteredRecipes),
		Favorites:         len(st.Favorites),
		DanglingFavorites: len(dangling),
		Recommendations:   len(st.Recommendations),
	}, op == recipes.OpGenerateRecommendations)

	fields := map[string]any{
		"op":              op,
		"recipes":         len(st.Recipes),
		"filtered":        len(st.FilteredRecipes),
		"favorites":       len(st.Favorites),
		"recommendations": len(st.Recommendations),
	}
	if len(dangling) > 0 {
		fields["dangling_favorites"] = dangling
	}
	telemetry.Debug("store.mutation", fields)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/recipes"
	"recipe-backend/internal/services/health"
	"recipe-backend/internal/shared/config"
	"recipe-backend/internal/shared/metrics"
	"recipe-backend/internal/shared/server/middleware"
	"recipe-backend/internal/shared/server/respond"
)

// RouterDeps lists the handlers the router mounts.
type RouterDeps struct {
	Config        config.Config
	RecipeHandler *recipes.Handler
	Health        *health.Service
	RateLimiter   *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})

	if rule := deps.Config.RateLimit; rule.Rate > 0 {
		api.Use(middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "WRITE",
			GroupFor:     rateLimitGroup,
			Limiter:      deps.RateLimiter,
			Rules: map[string]middleware.RateLimitRule{
				"WRITE": {Rate: rule.Rate, Burst: rule.Burst},
				"READ":  {Rate: rule.Rate * 2, Burst: rule.Burst * 2},
			},
		}))
	}

	if deps.RecipeHandler != nil {
		deps.RecipeHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return "READ"
	}
	return "WRITE"
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

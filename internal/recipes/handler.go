package recipes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/shared/server/respond"
	"recipe-backend/internal/shared/validation"
)

// Handler exposes the store over HTTP. It plays the part of the forms and
// list views: it validates input and picks ids, the store never does.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches recipe routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/state", h.getState)

	rg.GET("/recipes", h.listRecipes)
	rg.PUT("/recipes", h.setRecipes)
	rg.POST("/recipes", h.createRecipe)
	rg.POST("/recipes/filter", h.filterRecipes)
	rg.GET("/recipes/:id", h.getRecipe)
	rg.PUT("/recipes/:id", h.updateRecipe)
	rg.DELETE("/recipes/:id", h.deleteRecipe)

	rg.PUT("/search", h.setSearch)
	rg.DELETE("/search", h.clearSearch)

	rg.GET("/favorites", h.listFavorites)
	rg.POST("/favorites/:id", h.addFavorite)
	rg.DELETE("/favorites/:id", h.removeFavorite)

	rg.GET("/recommendations", h.listRecommendations)
	rg.POST("/recommendations", h.generateRecommendations)
}

func (h *Handler) getState(c *gin.Context) {
	respond.OK(c, h.Store.State())
}

func (h *Handler) listRecipes(c *gin.Context) {
	st := h.Store.State()
	respond.OK(c, recipesResponse{
		Recipes:         st.Recipes,
		FilteredRecipes: st.FilteredRecipes,
		SearchTerm:      st.SearchTerm,
	})
}

func (h *Handler) getRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	recipe, found := h.Store.Recipe(id)
	if !found {
		respondNotFound(c)
		return
	}
	respond.OK(c, recipe)
}

func (h *Handler) createRecipe(c *gin.Context) {
	var req recipeInput
	if !bind(c, &req) {
		return
	}
	recipe := Recipe{
		ID:          h.Store.NextID(),
		Title:       req.Title,
		Description: req.Description,
	}
	c.Set("recipeId", recipe.ID)
	c.Set("storeOp", OpAddRecipe)
	st := h.Store.AddRecipe(recipe)
	respond.Created(c, c.Request.URL.Path+"/"+strconv.FormatInt(recipe.ID, 10), createRecipeResponse{Recipe: recipe, State: st})
}

func (h *Handler) updateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req recipeInput
	if !bind(c, &req) {
		return
	}
	if _, found := h.Store.Recipe(id); !found {
		respondNotFound(c)
		return
	}
	c.Set("storeOp", OpUpdateRecipe)
	respond.OK(c, h.Store.UpdateRecipe(Recipe{ID: id, Title: req.Title, Description: req.Description}))
}

func (h *Handler) deleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	c.Set("storeOp", OpDeleteRecipe)
	respond.OK(c, h.Store.DeleteRecipe(id))
}

func (h *Handler) setRecipes(c *gin.Context) {
	var req setRecipesRequest
	if !bind(c, &req) {
		return
	}
	c.Set("storeOp", OpSetRecipes)
	respond.OK(c, h.Store.SetRecipes(toRecipes(req.Recipes)))
}

func (h *Handler) filterRecipes(c *gin.Context) {
	c.Set("storeOp", OpFilterRecipes)
	respond.OK(c, h.Store.FilterRecipes())
}

func (h *Handler) setSearch(c *gin.Context) {
	var req searchRequest
	if !bind(c, &req) {
		return
	}
	c.Set("storeOp", OpSetSearchTerm)
	respond.OK(c, h.Store.SetSearchTerm(req.Term))
}

func (h *Handler) clearSearch(c *gin.Context) {
	c.Set("storeOp", OpSetSearchTerm)
	respond.OK(c, h.Store.SetSearchTerm(""))
}

func (h *Handler) listFavorites(c *gin.Context) {
	st := h.Store.State()
	respond.OK(c, favoritesResponse{
		Favorites: st.Favorites,
		Recipes:   st.FavoriteRecipes(),
	})
}

func (h *Handler) addFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	c.Set("storeOp", OpAddFavorite)
	respond.OK(c, h.Store.AddFavorite(id))
}

func (h *Handler) removeFavorite(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	c.Set("storeOp", OpRemoveFavorite)
	respond.OK(c, h.Store.RemoveFavorite(id))
}

func (h *Handler) listRecommendations(c *gin.Context) {
	st := h.Store.State()
	respond.OK(c, recommendationsResponse{
		Recommendations: st.Recommendations,
		Favorites:       len(st.Favorites),
	})
}

func (h *Handler) generateRecommendations(c *gin.Context) {
	c.Set("storeOp", OpGenerateRecommendations)
	st := h.Store.GenerateRecommendations()
	respond.OK(c, recommendationsResponse{
		Recommendations: st.Recommendations,
		Favorites:       len(st.Favorites),
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "recipe id must be an integer", []validation.FieldError{
			{Field: "id", Issue: "invalid"},
		})
		return 0, false
	}
	c.Set("recipeId", id)
	return id, true
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid JSON body", nil)
		return false
	}
	if err := validation.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "request validation failed", verr.Fields)
			return false
		}
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to validate request", nil)
		return false
	}
	return true
}

func respondNotFound(c *gin.Context) {
	respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, ErrNotFound.Error(), nil)
}

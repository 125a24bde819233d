package recipes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"recipe-backend/internal/bootstrap"
	"recipe-backend/internal/recipes"
	"recipe-backend/internal/shared/config"
	"recipe-backend/internal/shared/telemetry"
)

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field string `json:"field"`
			Issue string `json:"issue"`
		} `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T, seed bool) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	telemetry.Init(telemetry.Config{Output: io.Discard})
	t.Cleanup(func() { telemetry.Init(telemetry.Config{}) })

	cfg := config.Default()
	cfg.SeedSamples = seed
	cfg.RateLimit.Rate = 0
	cfg.Recommend.Seed = 11

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app.Router
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestStateSeeded(t *testing.T) {
	router := newTestRouter(t, true)

	resp := do(t, router, http.MethodGet, "/api/v1/state", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	st := decode[recipes.State](t, resp)
	if len(st.Recipes) != 8 || len(st.FilteredRecipes) != 8 {
		t.Fatalf("expected 8 seeded recipes, got %d/%d", len(st.Recipes), len(st.FilteredRecipes))
	}
	if st.Favorites == nil || st.Recommendations == nil {
		t.Fatalf("expected empty arrays, not null")
	}
}

func TestCreateGetUpdateDeleteRecipe(t *testing.T) {
	router := newTestRouter(t, true)

	resp := do(t, router, http.MethodPost, "/api/v1/recipes", map[string]string{
		"title":       "Miso Soup",
		"description": "tofu and seaweed",
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/api/v1/recipes/9" {
		t.Fatalf("unexpected Location %q", loc)
	}
	created := decode[struct {
		Recipe recipes.Recipe `json:"recipe"`
		State  recipes.State  `json:"state"`
	}](t, resp)
	if created.Recipe.ID != 9 {
		t.Fatalf("expected store-issued id 9, got %d", created.Recipe.ID)
	}
	if len(created.State.Recipes) != 9 {
		t.Fatalf("expected 9 recipes, got %d", len(created.State.Recipes))
	}

	resp = do(t, router, http.MethodGet, "/api/v1/recipes/9", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := decode[recipes.Recipe](t, resp); got.Title != "Miso Soup" {
		t.Fatalf("unexpected recipe: %+v", got)
	}

	resp = do(t, router, http.MethodPut, "/api/v1/recipes/9", map[string]string{
		"title":       "Red Miso Soup",
		"description": "tofu, seaweed and scallions",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	st := decode[recipes.State](t, resp)
	if st.Recipes[8].Title != "Red Miso Soup" || st.Recipes[8].ID != 9 {
		t.Fatalf("unexpected updated recipe: %+v", st.Recipes[8])
	}

	resp = do(t, router, http.MethodDelete, "/api/v1/recipes/9", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if st := decode[recipes.State](t, resp); len(st.Recipes) != 8 {
		t.Fatalf("expected 8 recipes after delete, got %d", len(st.Recipes))
	}

	resp = do(t, router, http.MethodGet, "/api/v1/recipes/9", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	router := newTestRouter(t, false)

	resp := do(t, router, http.MethodPost, "/api/v1/recipes", map[string]string{
		"title":       "   ",
		"description": "ok",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	env := decode[errorEnvelope](t, resp)
	if env.Error.Code != recipes.ErrorCodeValidation {
		t.Fatalf("expected validation_error, got %q", env.Error.Code)
	}
	if len(env.Error.Details) != 1 || env.Error.Details[0].Field != "title" {
		t.Fatalf("unexpected details: %+v", env.Error.Details)
	}
}

func TestInvalidIDRejected(t *testing.T) {
	router := newTestRouter(t, true)
	resp := do(t, router, http.MethodPost, "/api/v1/favorites/abc", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUpdateUnknownRecipeNotFound(t *testing.T) {
	router := newTestRouter(t, true)
	resp := do(t, router, http.MethodPut, "/api/v1/recipes/404", map[string]string{
		"title":       "x",
		"description": "y",
	})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDeleteUnknownRecipeIsSilent(t *testing.T) {
	router := newTestRouter(t, true)
	resp := do(t, router, http.MethodDelete, "/api/v1/recipes/404", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if st := decode[recipes.State](t, resp); len(st.Recipes) != 8 {
		t.Fatalf("expected untouched recipes, got %d", len(st.Recipes))
	}
}

func TestSearchAndClear(t *testing.T) {
	router := newTestRouter(t, true)

	resp := do(t, router, http.MethodPut, "/api/v1/search", map[string]string{"term": "CHOCOLATE"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	st := decode[recipes.State](t, resp)
	if len(st.FilteredRecipes) != 2 {
		t.Fatalf("expected 2 chocolate recipes, got %d", len(st.FilteredRecipes))
	}

	resp = do(t, router, http.MethodGet, "/api/v1/recipes", nil)
	list := decode[struct {
		SearchTerm      string           `json:"searchTerm"`
		FilteredRecipes []recipes.Recipe `json:"filteredRecipes"`
	}](t, resp)
	if list.SearchTerm != "CHOCOLATE" || len(list.FilteredRecipes) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}

	resp = do(t, router, http.MethodDelete, "/api/v1/search", nil)
	st = decode[recipes.State](t, resp)
	if st.SearchTerm != "" || len(st.FilteredRecipes) != 8 {
		t.Fatalf("expected cleared search, got %q with %d", st.SearchTerm, len(st.FilteredRecipes))
	}

	resp = do(t, router, http.MethodPost, "/api/v1/recipes/filter", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestBulkSetRecipes(t *testing.T) {
	router := newTestRouter(t, true)

	resp := do(t, router, http.MethodPut, "/api/v1/recipes", map[string]any{
		"recipes": []map[string]any{
			{"id": 10, "title": "Ramen", "description": "broth"},
			{"id": 11, "title": "Udon", "description": "thick noodles"},
		},
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if st := decode[recipes.State](t, resp); len(st.Recipes) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(st.Recipes))
	}

	resp = do(t, router, http.MethodPut, "/api/v1/recipes", map[string]any{
		"recipes": []map[string]any{{"id": 0, "title": "Bad", "description": "id"}},
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestFavoritesDanglingFilteredOut(t *testing.T) {
	router := newTestRouter(t, true)

	do(t, router, http.MethodPost, "/api/v1/favorites/1", nil)
	do(t, router, http.MethodPost, "/api/v1/favorites/1", nil)
	do(t, router, http.MethodPost, "/api/v1/favorites/3", nil)
	do(t, router, http.MethodDelete, "/api/v1/recipes/3", nil)

	resp := do(t, router, http.MethodGet, "/api/v1/favorites", nil)
	favs := decode[struct {
		Favorites []int64          `json:"favorites"`
		Recipes   []recipes.Recipe `json:"recipes"`
	}](t, resp)
	if len(favs.Favorites) != 3 {
		t.Fatalf("expected raw favorites [1 1 3], got %v", favs.Favorites)
	}
	for _, r := range favs.Recipes {
		if r.ID == 3 {
			t.Fatalf("expected dangling favorite to be dropped")
		}
	}

	resp = do(t, router, http.MethodDelete, "/api/v1/favorites/1", nil)
	st := decode[recipes.State](t, resp)
	if len(st.Favorites) != 1 || st.Favorites[0] != 3 {
		t.Fatalf("expected only dangling id 3 left, got %v", st.Favorites)
	}
}

func TestRecommendationsFromFavorites(t *testing.T) {
	router := newTestRouter(t, true)

	do(t, router, http.MethodPost, "/api/v1/favorites/1", nil)
	resp := do(t, router, http.MethodPost, "/api/v1/recommendations", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	out := decode[struct {
		Recommendations []recipes.Recipe `json:"recommendations"`
		Favorites       int              `json:"favorites"`
	}](t, resp)
	if out.Favorites != 1 {
		t.Fatalf("expected favorites=1, got %d", out.Favorites)
	}
	if len(out.Recommendations) == 0 || len(out.Recommendations) > recipes.MaxRecommendations {
		t.Fatalf("unexpected recommendation count %d", len(out.Recommendations))
	}
	for _, r := range out.Recommendations {
		if r.ID == 1 {
			t.Fatalf("favorite recommended back")
		}
	}

	resp = do(t, router, http.MethodGet, "/api/v1/recommendations", nil)
	again := decode[struct {
		Recommendations []recipes.Recipe `json:"recommendations"`
	}](t, resp)
	if len(again.Recommendations) != len(out.Recommendations) {
		t.Fatalf("expected GET to return the stored list")
	}
}

func TestHealthReportsRecipeCount(t *testing.T) {
	router := newTestRouter(t, true)
	resp := do(t, router, http.MethodGet, "/api/v1/health", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := decode[map[string]any](t, resp)
	if body["ok"] != true || body["recipes"] != float64(8) {
		t.Fatalf("unexpected health body: %v", body)
	}
}

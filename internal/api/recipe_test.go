package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/flavourly/backend/internal/testhelpers"
)

func seedPublished(t *testing.T, db *gorm.DB, n int, opts ...testhelpers.RecipeOption) uuid.UUID {
	t.Helper()
	user := testhelpers.CreateTestUser(t, db)
	for i := 0; i < n; i++ {
		testhelpers.CreateTestRecipe(t, db, user.ID, opts...)
	}
	return user.ID
}

func TestSearchEndpointEnvelope(t *testing.T) {
	router, db := setupTestRouter(t)
	userID := seedPublished(t, db, 3, testhelpers.WithCuisine("thai"))
	testhelpers.CreateTestRecipe(t, db, userID, testhelpers.WithCuisine("italian"))

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/search?q=&cuisine=thai&sortBy=rating&minRating=0", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["recipes"], 3)

	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 1, pagination["page"])
	assert.EqualValues(t, 12, pagination["limit"])
	assert.EqualValues(t, 3, pagination["total"])
	assert.EqualValues(t, 1, pagination["pages"])

	// The echoed filters mirror the raw request input.
	filters := body["filters"].(map[string]interface{})
	assert.Equal(t, "thai", filters["cuisine"])
	assert.Equal(t, "rating", filters["sortBy"])
	assert.Equal(t, "0", filters["minRating"])
}

func TestSearchEndpointDefaultsToRelevance(t *testing.T) {
	router, db := setupTestRouter(t)
	seedPublished(t, db, 1)

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/search", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	filters := decodeBody(t, w)["filters"].(map[string]interface{})
	assert.Equal(t, "relevance", filters["sortBy"])
}

func TestSearchEndpointPagination(t *testing.T) {
	router, db := setupTestRouter(t)
	seedPublished(t, db, 30)

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/search?page=1&limit=12", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["recipes"], 12)
	pagination := body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 3, pagination["pages"])

	// Out-of-range and oversized values clamp instead of erroring.
	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/search?page=-2&limit=500", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	pagination = decodeBody(t, w)["pagination"].(map[string]interface{})
	assert.EqualValues(t, 1, pagination["page"])
	assert.EqualValues(t, 100, pagination["limit"])

	// Past the last page: empty list, stable metadata.
	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/search?page=4&limit=12", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Len(t, body["recipes"], 0)
	pagination = body["pagination"].(map[string]interface{})
	assert.EqualValues(t, 4, pagination["page"])
	assert.EqualValues(t, 30, pagination["total"])
}

func TestSearchEndpointTags(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db)
	testhelpers.CreateTestRecipe(t, db, user.ID, testhelpers.WithTags("vegan"))
	testhelpers.CreateTestRecipe(t, db, user.ID, testhelpers.WithTags("quick"))
	testhelpers.CreateTestRecipe(t, db, user.ID)

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/search?tags=vegan&tags=quick", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["recipes"], 2)
}

func TestGetRecipeBySlug(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID)

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+recipe.Slug, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)["recipe"].(map[string]interface{})
	assert.Equal(t, recipe.Slug, got["slug"])
	assert.EqualValues(t, 1, got["view_count"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/no-such-recipe", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRecipeEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)
	token, _ := registerUser(t, router, "Chef", "chef@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes", gin.H{
		"title":       "Pad Thai",
		"cuisine":     "thai",
		"mealType":    "dinner",
		"isPublished": true,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	recipe := decodeBody(t, w)["recipe"].(map[string]interface{})
	assert.Equal(t, "pad-thai", recipe["slug"])

	// Unauthenticated creation is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes", gin.H{"title": "Nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Title is mandatory.
	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes", gin.H{"cuisine": "thai"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMyRecipesEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	token, userIDStr := registerUser(t, router, "Chef", "chef@example.com")
	userID, err := uuid.Parse(userIDStr)
	require.NoError(t, err)

	testhelpers.CreateTestRecipe(t, db, userID)
	testhelpers.CreateTestRecipe(t, db, userID, testhelpers.Draft())

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/my/recipes", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["recipes"], 2)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/my/recipes?status=draft", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["recipes"], 1)
}

func TestLikeSaveRateFlow(t *testing.T) {
	router, db := setupTestRouter(t)
	token, _ := registerUser(t, router, "Fan", "fan@example.com")
	owner := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID)

	base := fmt.Sprintf("/api/v1/recipes/%s", recipe.ID)

	w := doJSON(t, router, http.MethodPost, base+"/like", nil, token)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	// Liking twice stays OK.
	w = doJSON(t, router, http.MethodPost, base+"/like", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, base+"/save", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/recipes/saved", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["recipes"], 1)

	w = doJSON(t, router, http.MethodPost, base+"/rate", gin.H{"value": 4}, token)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 4, body["average_rating"])
	assert.EqualValues(t, 1, body["rating_count"])

	// Out-of-range ratings fail validation.
	w = doJSON(t, router, http.MethodPost, base+"/rate", gin.H{"value": 6}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodDelete, base+"/like", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodDelete, base+"/save", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Interactions against a missing recipe 404.
	w = doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+uuid.NewString()+"/like", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRecipeEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	ownerToken, ownerIDStr := registerUser(t, router, "Owner", "owner@example.com")
	strangerToken, _ := registerUser(t, router, "Stranger", "stranger@example.com")
	ownerID, err := uuid.Parse(ownerIDStr)
	require.NoError(t, err)

	recipe := testhelpers.CreateTestRecipe(t, db, ownerID)
	path := "/api/v1/recipes/" + recipe.ID.String()

	w := doJSON(t, router, http.MethodDelete, path, nil, strangerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, path, nil, ownerToken)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, path, nil, ownerToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCuisineListEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db)
	testhelpers.CreateTestRecipe(t, db, user.ID, testhelpers.WithCuisine("greek"))
	testhelpers.CreateTestRecipe(t, db, user.ID, testhelpers.WithCuisine("greek"))
	testhelpers.CreateTestRecipe(t, db, user.ID, testhelpers.WithCuisine("indian"))

	w := doJSON(t, router, http.MethodGet, "/api/v1/recipes/cuisine-list", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.ElementsMatch(t, []interface{}{"greek", "indian"}, decodeBody(t, w)["cuisines"])
}

func TestImageUploadUnconfigured(t *testing.T) {
	router, _ := setupTestRouter(t)
	token, _ := registerUser(t, router, "Chef", "chef@example.com")

	w := doJSON(t, router, http.MethodPost, "/api/v1/recipes/images", nil, token)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

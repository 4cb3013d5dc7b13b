package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flavourly/backend/internal/models"
	"github.com/flavourly/backend/internal/testhelpers"
)

func TestGetProfileEndpoint(t *testing.T) {
	router, db := setupTestRouter(t)
	user := testhelpers.CreateTestUser(t, db)

	w := doJSON(t, router, http.MethodGet, "/api/v1/users/"+user.Username, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	got := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, user.Username, got["username"])
	// Public profiles never expose the email.
	assert.NotContains(t, got, "email")

	w = doJSON(t, router, http.MethodGet, "/api/v1/users/nobody", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowEndpoints(t *testing.T) {
	router, db := setupTestRouter(t)
	token, _ := registerUser(t, router, "Alice", "alice@example.com")
	bob := testhelpers.CreateTestUser(t, db)

	path := "/api/v1/users/" + bob.Username + "/follow"

	w := doJSON(t, router, http.MethodPost, path, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Following twice is still OK.
	w = doJSON(t, router, http.MethodPost, path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// An authenticated viewer sees their follow state on the profile.
	w = doJSON(t, router, http.MethodGet, "/api/v1/users/"+bob.Username, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	got := decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, true, got["is_following"])

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", bob.ID).Error)
	assert.Equal(t, 1, fresh.FollowerCount)

	w = doJSON(t, router, http.MethodDelete, path, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&fresh, "id = ?", bob.ID).Error)
	assert.Equal(t, 0, fresh.FollowerCount)

	// Anonymous follow is rejected.
	w = doJSON(t, router, http.MethodPost, path, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSelfFollowRejected(t *testing.T) {
	router, _ := setupTestRouter(t)
	token, _ := registerUser(t, router, "Alice", "alice@example.com")

	w := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeBody(t, w)["user"].(map[string]interface{})
	username := me["username"].(string)

	w = doJSON(t, router, http.MethodPost, "/api/v1/users/"+username+"/follow", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/flavourly/backend/config"
	"github.com/flavourly/backend/internal/testhelpers"
)

const testJWTSecret = "test-secret-key-for-handler-tests"

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	router := gin.New()
	cfg := &config.Config{
		JWTSecret:   testJWTSecret,
		FrontendURL: "http://localhost:5173",
	}
	SetupAPI(router, db, cfg, Dependencies{})
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// registerUser registers through the API and returns the session token
// and user id.
func registerUser(t *testing.T, router *gin.Engine, name, email string) (token, userID string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", gin.H{
		"name":            name,
		"email":           email,
		"password":        "password123",
		"confirmPassword": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token, _ = body["token"].(string)
	user, _ := body["user"].(map[string]interface{})
	userID, _ = user["id"].(string)
	require.NotEmpty(t, token)
	require.NotEmpty(t, userID)
	return token, userID
}

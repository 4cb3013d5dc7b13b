package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/flavourly/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (s *stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	return s.claims, s.err
}

func authTestRouter(v TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(v), func(c *gin.Context) {
		id, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	ok := &stubValidator{claims: &types.TokenClaims{UserID: userID, Username: "jane"}}
	bad := &stubValidator{err: errors.New("expired")}

	cases := []struct {
		name      string
		validator TokenValidator
		header    string
		wantCode  int
	}{
		{"valid token", ok, "Bearer sometoken", http.StatusOK},
		{"missing header", ok, "", http.StatusUnauthorized},
		{"not bearer", ok, "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"malformed", ok, "Bearer", http.StatusUnauthorized},
		{"rejected token", bad, "Bearer sometoken", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := authTestRouter(tc.validator)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer abc123")

	token, ok := BearerToken(c)
	assert.True(t, ok)
	assert.Equal(t, "abc123", token)

	c.Request.Header.Del("Authorization")
	_, ok = BearerToken(c)
	assert.False(t, ok)
}

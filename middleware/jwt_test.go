package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fintrack/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withJWTSecret(t *testing.T, secret string) {
	t.Helper()
	InitJWT(&config.Config{JWT: config.JWTConfig{Secret: secret}})
	t.Cleanup(func() { jwtSecret = nil })
}

func TestGenerateAndParseToken(t *testing.T) {
	withJWTSecret(t, "test-jwt-secret-key")

	token, err := GenerateToken(7, "asha@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "fintrack", claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseToken_Rejects(t *testing.T) {
	withJWTSecret(t, "test-jwt-secret-key")

	expired, err := GenerateToken(1, "old@example.com", -time.Minute)
	require.NoError(t, err)

	jwtSecret = []byte("someone-else")
	foreign, err := GenerateToken(1, "x@example.com", time.Hour)
	require.NoError(t, err)
	jwtSecret = []byte("test-jwt-secret-key")

	cases := map[string]string{
		"empty":          "",
		"garbage":        "not.a.valid.jwt",
		"bad header":     "eyJhbGciOiJmb29iIn0.xxxx.yyyy",
		"expired":        expired,
		"foreign secret": foreign,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(token)
			assert.Error(t, err)
		})
	}
}

func TestJWTAuth(t *testing.T) {
	withJWTSecret(t, "test-jwt-secret-key")
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(JWTAuth())
	router.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, "%d %s", GetCurrentUserID(c), GetCurrentUserEmail(c))
	})

	valid, err := GenerateToken(42, "user42@example.com", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "basic scheme", header: "Basic xyz", wantStatus: http.StatusUnauthorized},
		{name: "bearer without token", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK, wantBody: "42 user42@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"code":401`)
			}
		})
	}
}

func TestGetCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetCurrentUserID(c))

	c.Set(ContextUserID, "not-a-uint")
	assert.Equal(t, uint(0), GetCurrentUserID(c))

	c.Set(ContextUserID, uint(99))
	assert.Equal(t, uint(99), GetCurrentUserID(c))
}

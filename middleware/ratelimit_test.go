package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoginRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(LoginRateLimit(2, 200*time.Millisecond))
	router.POST("/auth/login", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	attempt := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = ip + ":12345"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, attempt("192.168.1.1").Code)
	assert.Equal(t, http.StatusNoContent, attempt("192.168.1.1").Code)

	blocked := attempt("192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "1", blocked.Header().Get("Retry-After"))
	assert.Contains(t, blocked.Body.String(), `"code":429`)

	// 其他 IP 独立计数
	assert.Equal(t, http.StatusNoContent, attempt("192.168.1.2").Code)

	// 窗口滑过后恢复
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, http.StatusNoContent, attempt("192.168.1.1").Code)
}

func TestPruneBefore(t *testing.T) {
	now := time.Now()
	ts := []time.Time{now.Add(-3 * time.Second), now.Add(-time.Second), now}

	kept := pruneBefore(ts, now.Add(-2*time.Second))
	assert.Equal(t, []time.Time{now.Add(-time.Second), now}, kept)
	assert.Empty(t, pruneBefore(nil, now))
}

func TestAPIRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(APIRateLimit(3, time.Hour))
	router.GET("/api/v1/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	doReq := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/v1/ping", nil)
		req.RemoteAddr = ip + ":4321"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 3; i++ {
		w := doReq("10.0.0.1")
		assert.Equal(t, 200, w.Code)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doReq("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "429")

	// 其他 IP 有独立的令牌桶
	assert.Equal(t, 200, doReq("10.0.0.2").Code)
}

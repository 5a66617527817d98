package metrics

import (
	"net/http/httptest"
	"testing"

	"fintrack/advisor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/v1/items/:id", func(c *gin.Context) { c.Status(204) })
	router.GET("/metrics", Handler())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/items/7", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	body := w.Body.String()
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, body, `fintrack_http_request_duration_seconds_count{method="GET",route="/api/v1/items/:id",status="204"} 1`)
	assert.Contains(t, body, `route="unmatched",status="404"`)
}

func TestObserveAnalysis(t *testing.T) {
	before := testutil.ToFloat64(recommendations.WithLabelValues("warning", "high"))

	ObserveAnalysis(advisor.Summary{
		HealthScore: 72,
		Recommendations: []advisor.Recommendation{
			{Type: advisor.TypeWarning, Priority: advisor.PriorityHigh},
			{Type: advisor.TypeWarning, Priority: advisor.PriorityHigh},
			{Type: advisor.TypeSuccess, Priority: advisor.PriorityLow},
		},
	})

	assert.Equal(t, before+2, testutil.ToFloat64(recommendations.WithLabelValues("warning", "high")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(recommendations.WithLabelValues("success", "low")), 1.0)
	assert.Equal(t, 1, testutil.CollectAndCount(healthScore))
}

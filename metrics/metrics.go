// Package metrics 暴露 Prometheus 指标
package metrics

import (
	"strconv"
	"time"

	"fintrack/advisor"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fintrack"

var (
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"method", "route", "status"},
	)

	healthScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "health_score",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "advisor",
			Name:      "recommendations_total",
		},
		[]string{"type", "priority"},
	)
)

// Middleware 记录请求耗时；未匹配路由统一记为 unmatched 以控制标签基数
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// ObserveAnalysis 记录一次分析的健康分
func ObserveAnalysis(s advisor.Summary) {
	healthScore.Observe(float64(s.HealthScore))
	ObserveRecommendations(s.Recommendations)
}

// ObserveRecommendations 按类型与优先级累计建议条数
func ObserveRecommendations(recs []advisor.Recommendation) {
	for _, r := range recs {
		recommendations.WithLabelValues(string(r.Type), string(r.Priority)).Inc()
	}
}

// Handler /metrics 处理器
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

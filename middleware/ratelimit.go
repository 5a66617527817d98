package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// pruneBefore 原地移除 cutoff 之前的时间戳
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// LoginRateLimit 注册/登录接口限流：每 IP 在 window 内最多 maxAttempts 次（滑动窗口）
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		attempts = make(map[string][]time.Time)
	)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for ip, ts := range attempts {
				if ts = pruneBefore(ts, cutoff); len(ts) == 0 {
					delete(attempts, ip)
				} else {
					attempts[ip] = ts
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		ts := pruneBefore(attempts[ip], now.Add(-window))
		if len(ts) >= maxAttempts {
			// 最早一次尝试滑出窗口后即可重试
			wait := ts[0].Add(window).Sub(now)
			attempts[ip] = ts
			mu.Unlock()

			retryAfter := int(wait.Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			log.Warn().Str("ip", ip).Str("path", c.FullPath()).Int("retry_after", retryAfter).Msg("登录尝试过于频繁")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			return
		}
		attempts[ip] = append(ts, now)
		mu.Unlock()
		c.Next()
	}
}

// limiterTTL 超过该时长未访问的限流器会被回收
const limiterTTL = 30 * time.Minute

// APIRateLimit 接口整体限流：每 IP 一个令牌桶，window 内最多 requests 次，允许一次性突发 requests 次
func APIRateLimit(requests int, window time.Duration) gin.HandlerFunc {
	type limiterEntry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	var (
		mu       sync.Mutex
		limiters = make(map[string]*limiterEntry)
		every    = rate.Every(window / time.Duration(requests))
	)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			for ip, e := range limiters {
				if time.Since(e.lastSeen) > limiterTTL {
					delete(limiters, ip)
				}
			}
			mu.Unlock()
		}
	}()

	limit := strconv.Itoa(requests)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		mu.Lock()
		e, ok := limiters[ip]
		if !ok {
			e = &limiterEntry{limiter: rate.NewLimiter(every, requests)}
			limiters[ip] = e
		}
		e.lastSeen = time.Now()
		allowed := e.limiter.Allow()
		remaining := int(e.limiter.Tokens())
		mu.Unlock()

		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := int(time.Duration(float64(time.Second) / float64(every)).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			log.Warn().Str("ip", ip).Int("retry_after", retryAfter).Msg("请求频率超限")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "请求过于频繁，请稍后再试",
			})
			return
		}
		c.Next()
	}
}

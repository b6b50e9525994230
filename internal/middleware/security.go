package middleware

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	mu       sync.Mutex
}

// NewRateLimiter builds a per-IP limiter with the given sustained rate
// and burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 100
	}
	if burst <= 0 {
		burst = 200
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, exists := rl.limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limiters[ip] = limiter
	return limiter
}

// RateLimit enforces the per-IP request budget.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.limiter(ip).Allow() {
			log.Printf("[SECURITY] rate limit exceeded for IP: %s", ip)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       http.StatusText(http.StatusTooManyRequests),
				"message":     "rate limit exceeded",
				"retry_after": 60,
			})
			return
		}
		c.Next()
	}
}

// NewTokenRateLimiter builds the stricter limiter mounted on the token
// endpoint: 5 requests per minute per IP, burst of 10.
func NewTokenRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Every(12 * time.Second),
		burst:    10,
	}
}

// SecurityHeaders adds the standard hardening headers to all responses.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// CORS allows cross-origin reads from the configured origins. An empty
// list reflects any origin, matching an open monitoring endpoint.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := origin != "" && len(allowedOrigins) == 0
		for _, o := range allowedOrigins {
			trimmed := strings.TrimRight(strings.TrimSpace(o), "/")
			if trimmed == "*" || trimmed == strings.TrimRight(origin, "/") {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequireToken guards a route group with bearer token authentication.
func RequireToken(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := ""
		if strings.HasPrefix(header, "Bearer ") {
			token = strings.TrimPrefix(header, "Bearer ")
		}
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   http.StatusText(http.StatusUnauthorized),
				"message": "missing bearer token",
			})
			return
		}

		if _, err := auth.ValidateToken(token); err != nil {
			log.Printf("[SECURITY] failed authentication from IP %s: %v", c.ClientIP(), err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   http.StatusText(http.StatusUnauthorized),
				"message": "invalid token",
			})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostpulse/internal/services"

	"github.com/gin-gonic/gin"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"pong": true})
	})
	return r
}

func get(r *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitExhaustion(t *testing.T) {
	// Burst of 2 with a negligible refill rate: third request must be
	// rejected.
	rl := NewRateLimiter(0.0001, 2)
	r := newEngine(RateLimit(rl))

	for i := 0; i < 2; i++ {
		if w := get(r, "/ping", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, w.Code)
		}
	}
	if w := get(r, "/ping", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after burst", w.Code)
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeaders())

	w := get(r, "/ping", nil)
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options")
	}
	if w.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name      string
		allowed   []string
		origin    string
		wantAllow string
	}{
		{name: "open reflects origin", allowed: nil, origin: "https://dash.example.com", wantAllow: "https://dash.example.com"},
		{name: "listed origin allowed", allowed: []string{"https://dash.example.com"}, origin: "https://dash.example.com", wantAllow: "https://dash.example.com"},
		{name: "unlisted origin denied", allowed: []string{"https://dash.example.com"}, origin: "https://evil.example.com", wantAllow: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(CORS(tt.allowed))
			w := get(r, "/ping", map[string]string{"Origin": tt.origin})
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantAllow)
			}
		})
	}
}

func TestRequireToken(t *testing.T) {
	auth := services.NewAuthService("middleware-test-secret", time.Hour)
	r := newEngine(RequireToken(auth))

	if w := get(r, "/ping", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want 401", w.Code)
	}

	if w := get(r, "/ping", map[string]string{"Authorization": "Bearer bogus"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("status with bogus token = %d, want 401", w.Code)
	}

	token, _, err := auth.GenerateToken("tester")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if w := get(r, "/ping", map[string]string{"Authorization": "Bearer " + token}); w.Code != http.StatusOK {
		t.Fatalf("status with valid token = %d, want 200", w.Code)
	}
	// Query parameter fallback, used by websocket clients.
	if w := get(r, "/ping?token="+token, nil); w.Code != http.StatusOK {
		t.Fatalf("status with query token = %d, want 200", w.Code)
	}
}

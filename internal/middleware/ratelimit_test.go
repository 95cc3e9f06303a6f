package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"project-hub/backend/internal/config"
	"project-hub/backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func setupRateLimitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.NewRateLimiter(cfg).Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return router
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	router := setupRateLimitedRouter(config.RateLimitConfig{
		RequestsPerMin: 60,
		BurstSize:      3,
		ClientTTL:      time.Minute,
	})

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("GET", "/ping", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status %d, got %d", i+1, http.StatusOK, w.Code)
		}
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	router := setupRateLimitedRouter(config.RateLimitConfig{
		RequestsPerMin: 1,
		BurstSize:      1,
		ClientTTL:      time.Minute,
	})

	req, _ := http.NewRequest("GET", "/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("First request: expected status %d, got %d", http.StatusOK, w.Code)
	}

	req, _ = http.NewRequest("GET", "/ping", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Second request: expected status %d, got %d", http.StatusTooManyRequests, w.Code)
	}
}

func TestRateLimiter_TracksClientsSeparately(t *testing.T) {
	router := setupRateLimitedRouter(config.RateLimitConfig{
		RequestsPerMin: 1,
		BurstSize:      1,
		ClientTTL:      time.Minute,
	})

	first, _ := http.NewRequest("GET", "/ping", nil)
	first.RemoteAddr = "192.0.2.1:1234"
	first.Header.Set("X-Forwarded-For", "10.0.0.1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, first)
	if w.Code != http.StatusOK {
		t.Fatalf("Client A: expected status %d, got %d", http.StatusOK, w.Code)
	}

	second, _ := http.NewRequest("GET", "/ping", nil)
	second.RemoteAddr = "192.0.2.1:1234"
	second.Header.Set("X-Forwarded-For", "10.0.0.2")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, second)
	if w.Code != http.StatusOK {
		t.Errorf("Client B: expected status %d, got %d", http.StatusOK, w.Code)
	}
}

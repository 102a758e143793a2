package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/cache"
	"github.com/fundhive/fundhive/internal/model"
)

// countingLimiter allows the first n requests per user.
type countingLimiter struct {
	mu    sync.Mutex
	n     int64
	seen  map[string]int64
	err   error
	calls int
}

func (l *countingLimiter) CheckUserRateLimit(ctx context.Context, userID string, ratePerMinute, burst int) (*cache.RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	if l.seen == nil {
		l.seen = make(map[string]int64)
	}
	l.seen[userID]++
	used := l.seen[userID]
	if used > l.n {
		return &cache.RateLimitResult{Allowed: false, RetryAfter: 1500 * time.Millisecond, ResetAt: time.Now().Add(time.Second)}, nil
	}
	return &cache.RateLimitResult{Allowed: true, Remaining: l.n - used, ResetAt: time.Now()}, nil
}

func withUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(auth.ContextWithAuth(r.Context(), &model.AuthContext{UserID: userID, Role: model.RoleUser}))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitUser(t *testing.T) {
	limiter := &countingLimiter{n: 2}
	handler := RateLimitUser(UserRateLimitConfig{
		Logger:        discardLogger(),
		Limiter:       limiter,
		Enabled:       true,
		RatePerMinute: 60,
		Burst:         2,
	})(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/api/projects/p1/back", nil), "u1"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/api/projects/p1/back", nil), "u1"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "RATE_LIMITED", body["code"])

	// Another user has their own bucket.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/api/projects/p1/back", nil), "u2"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitUser_FailsOpen(t *testing.T) {
	limiter := &countingLimiter{err: errors.New("redis down")}
	handler := RateLimitUser(UserRateLimitConfig{
		Logger:        discardLogger(),
		Limiter:       limiter,
		Enabled:       true,
		RatePerMinute: 60,
		Burst:         1,
	})(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodPost, "/", nil), "u1"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, limiter.calls)
}

func TestRateLimitUser_Bypass(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		userID  string
	}{
		{name: "disabled", enabled: false, userID: "u1"},
		{name: "anonymous request", enabled: true, userID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := &countingLimiter{}
			handler := RateLimitUser(UserRateLimitConfig{
				Logger:  discardLogger(),
				Limiter: limiter,
				Enabled: tt.enabled,
			})(okHandler())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req = withUser(req, tt.userID)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Zero(t, limiter.calls)
		})
	}
}

func TestIPRateLimiter(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{
		Logger:        discardLogger(),
		RatePerMinute: 1,
		Burst:         2,
	})
	defer rl.Stop()
	handler := rl.Middleware(okHandler())

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1:5678"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:9999"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
	assert.Equal(t, 2, rl.Len())
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{
		Logger:          discardLogger(),
		RatePerMinute:   60,
		Burst:           5,
		CleanupInterval: time.Hour,
	})
	defer rl.Stop()

	rl.limiterFor("10.0.0.1")
	rl.limiterFor("10.0.0.2")
	require.Equal(t, 2, rl.Len())

	rl.cleanup(time.Now())
	assert.Equal(t, 2, rl.Len())

	rl.cleanup(time.Now().Add(3 * time.Hour))
	assert.Zero(t, rl.Len())
}

func TestIPRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{Logger: discardLogger(), RatePerMinute: 10})
	rl.Stop()
	rl.Stop()
}

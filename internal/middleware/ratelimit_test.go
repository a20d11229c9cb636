package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/aniflix/aniflix/internal/model"
)

// testRateLimiterConfig は補充を事実上止めた小バーストの設定を返す。
// バースト消費のみでレート超過を再現できる。
func testRateLimiterConfig(generalBurst, searchBurst int) RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(0.001),
		GeneralBurst:    generalBurst,
		SearchRate:      rate.Limit(0.001),
		SearchBurst:     searchBurst,
		CleanupInterval: time.Hour,
	}
}

func authedRequest(userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/movie/trending", nil)
	return req.WithContext(ContextWithUser(req.Context(), &model.User{ID: userID}))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(3, 1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest("user-1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}
}

func TestGeneralMiddleware_BurstExhausted_Returns429(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(2, 1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, authedRequest("user-1"))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("user-1"))

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header should be set")
	}
	body := decodeErrorBody(t, rec)
	if body.Success {
		t.Error("success should be false")
	}
	if body.Message != "Too many requests. Please try again later." {
		t.Errorf("message = %q", body.Message)
	}
}

func TestGeneralMiddleware_PerUserIsolation(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 1))
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())

	// user-1のバーストを使い切る
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("user-1"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("user-1"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("user-1 second request: status = %d, want 429", rec.Code)
	}

	// user-2には影響しない
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("user-2"))
	if rec.Code != http.StatusOK {
		t.Errorf("user-2 first request: status = %d, want 200", rec.Code)
	}

	if got := rl.GeneralLimiterCount(); got != 2 {
		t.Errorf("GeneralLimiterCount = %d, want 2", got)
	}
}

func TestSearchMiddleware_IndependentFromGeneral(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(1, 2))
	defer rl.Stop()

	general := rl.GeneralMiddleware()(okHandler())
	search := rl.SearchMiddleware()(okHandler())

	// 全般のバーストを使い切っても検索は通る
	rec := httptest.NewRecorder()
	general.ServeHTTP(rec, authedRequest("user-1"))
	rec = httptest.NewRecorder()
	general.ServeHTTP(rec, authedRequest("user-1"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("general second request: status = %d, want 429", rec.Code)
	}

	rec = httptest.NewRecorder()
	search.ServeHTTP(rec, authedRequest("user-1"))
	if rec.Code != http.StatusOK {
		t.Errorf("search request: status = %d, want 200", rec.Code)
	}

	if got := rl.SearchLimiterCount(); got != 1 {
		t.Errorf("SearchLimiterCount = %d, want 1", got)
	}
}

func TestRateLimitMiddleware_MissingUserID_Returns401(t *testing.T) {
	rl := NewRateLimiter(testRateLimiterConfig(10, 10))
	defer rl.Stop()

	tests := []struct {
		name    string
		handler http.Handler
	}{
		{"general", rl.GeneralMiddleware()(okHandler())},
		{"search", rl.SearchMiddleware()(okHandler())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/movie/trending", nil)
			rec := httptest.NewRecorder()
			tt.handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRateLimiter_CleanupRemovesStaleEntries(t *testing.T) {
	cfg := testRateLimiterConfig(10, 10)
	cfg.CleanupInterval = 10 * time.Millisecond
	rl := NewRateLimiter(cfg)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, authedRequest("user-1"))

	if got := rl.GeneralLimiterCount(); got != 1 {
		t.Fatalf("GeneralLimiterCount = %d, want 1", got)
	}

	// TTL（CleanupInterval*2）経過後のクリーンアップでエントリが消える
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rl.GeneralLimiterCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("stale limiter entry was not cleaned up")
}

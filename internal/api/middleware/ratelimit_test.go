package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowFn func(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return s.allowFn(ctx, key, limit, window)
}

func runRateLimit(t *testing.T, limiter Limiter, role string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return RateLimit(limiter, zerolog.Nop())(next)(c)
}

func TestRateLimit_Allowed(t *testing.T) {
	limiter := &stubLimiter{
		allowFn: func(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
			if window != time.Minute {
				t.Fatalf("expected one minute window, got %v", window)
			}
			return true, nil
		},
	}

	if err := runRateLimit(t, limiter, "user"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRateLimit_Denied(t *testing.T) {
	limiter := &stubLimiter{
		allowFn: func(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
			return false, nil
		},
	}

	err := runRateLimit(t, limiter, "user")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
}

func TestRateLimit_LimiterErrorFailsOpen(t *testing.T) {
	limiter := &stubLimiter{
		allowFn: func(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
			return false, errors.New("redis down")
		},
	}

	if err := runRateLimit(t, limiter, "user"); err != nil {
		t.Fatalf("expected request to pass through on limiter error, got %v", err)
	}
}

func TestRateLimit_RoleTiers(t *testing.T) {
	tiers := map[string]int{
		"admin": 100,
		"user":  20,
		"":      10, // anonymous falls into the guest tier
	}

	for role, want := range tiers {
		var gotLimit int
		var gotKey string
		limiter := &stubLimiter{
			allowFn: func(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
				gotLimit = limit
				gotKey = key
				return true, nil
			},
		}

		if err := runRateLimit(t, limiter, role); err != nil {
			t.Fatalf("role %q: unexpected error %v", role, err)
		}
		if gotLimit != want {
			t.Errorf("role %q: expected limit %d, got %d", role, want, gotLimit)
		}
		wantRole := role
		if wantRole == "" {
			wantRole = "guest"
		}
		if gotKey != "ratelimit:"+wantRole+":192.0.2.1" {
			t.Errorf("role %q: unexpected key %s", role, gotKey)
		}
	}
}

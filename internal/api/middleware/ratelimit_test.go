package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mtcleaning/account-service/internal/core/domain"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func runRateLimit(t *testing.T, mw echo.MiddlewareFunc) (bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/create-user", nil)
	req.Header.Set(echo.HeaderXRealIP, "203.0.113.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestRateLimit_Allows(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	called, err := runRateLimit(t, RateLimit(limiter, zerolog.Nop()))
	if err != nil || !called {
		t.Fatalf("expected pass-through, err=%v called=%v", err, called)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.7" {
		t.Fatalf("expected key by client ip, got %v", limiter.keys)
	}
}

func TestRateLimit_Rejects(t *testing.T) {
	called, err := runRateLimit(t, RateLimit(&stubLimiter{allowed: false}, zerolog.Nop()))
	if called {
		t.Fatalf("next should not be called")
	}
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if domain.Message(err) != "Too many requests" {
		t.Fatalf("unexpected message %q", domain.Message(err))
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	called, err := runRateLimit(t, RateLimit(&stubLimiter{err: errors.New("connection refused")}, zerolog.Nop()))
	if err != nil || !called {
		t.Fatalf("expected fail-open, err=%v called=%v", err, called)
	}
}

func TestRateLimit_NilLimiter(t *testing.T) {
	called, err := runRateLimit(t, RateLimit(nil, zerolog.Nop()))
	if err != nil || !called {
		t.Fatalf("expected pass-through, err=%v called=%v", err, called)
	}
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestRateLimiterKey_SameWindow(t *testing.T) {
	r := NewRateLimiter(nil, 10)
	base := time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)

	a := r.key("10.0.0.1", base.Add(5*time.Second))
	b := r.key("10.0.0.1", base.Add(55*time.Second))
	if a != b {
		t.Fatalf("expected same window key, got %s and %s", a, b)
	}
	if want := "ratelimit:10.0.0.1:1714558500"; a != want {
		t.Fatalf("expected %s, got %s", want, a)
	}
}

func TestRateLimiterKey_NextWindow(t *testing.T) {
	r := NewRateLimiter(nil, 10)
	base := time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC)

	if r.key("ip", base) == r.key("ip", base.Add(time.Minute)) {
		t.Fatalf("expected a new window after one minute")
	}
	if r.key("a", base) == r.key("b", base) {
		t.Fatalf("keys must differ per client")
	}
}

func newTestLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := NewRateLimiter(client, limit)
	at := time.Date(2024, 5, 1, 10, 15, 20, 0, time.UTC)
	r.now = func() time.Time { return at }
	return r, mr
}

func TestRateLimiterAllow_Boundary(t *testing.T) {
	r, mr := newTestLimiter(t, 3)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		ok, err := r.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	ok, err := r.Allow(ctx, "10.0.0.1")
	if err != nil {
		t.Fatalf("request 4: %v", err)
	}
	if ok {
		t.Fatalf("request over the limit should be rejected")
	}

	key := "ratelimit:10.0.0.1:1714558500"
	if got, _ := mr.Get(key); got != "4" {
		t.Fatalf("expected counter 4, got %q", got)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("expected one-minute expiry, got %v", ttl)
	}
}

func TestRateLimiterAllow_PerClientAndWindow(t *testing.T) {
	r, _ := newTestLimiter(t, 1)
	ctx := context.Background()

	if ok, _ := r.Allow(ctx, "a"); !ok {
		t.Fatalf("first request for a should pass")
	}
	if ok, _ := r.Allow(ctx, "b"); !ok {
		t.Fatalf("other clients have their own budget")
	}
	if ok, _ := r.Allow(ctx, "a"); ok {
		t.Fatalf("second request for a should be rejected")
	}

	next := r.now().Add(time.Minute)
	r.now = func() time.Time { return next }
	if ok, _ := r.Allow(ctx, "a"); !ok {
		t.Fatalf("a new window resets the budget")
	}
}

func TestRateLimiterAllow_RedisDown(t *testing.T) {
	r, mr := newTestLimiter(t, 5)
	mr.Close()

	ok, err := r.Allow(context.Background(), "10.0.0.1")
	if err == nil {
		t.Fatalf("expected an error when redis is unreachable")
	}
	if ok {
		t.Fatalf("errors must not report allowed")
	}
}

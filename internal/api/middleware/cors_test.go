package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCORS_Preflight(t *testing.T) {
	e := echo.New()
	e.Pre(CORS())
	e.POST("/create-user", func(c echo.Context) error {
		t.Fatalf("handler must not run for OPTIONS")
		return nil
	})

	req := httptest.NewRequest(http.MethodOptions, "/create-user", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin: got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization, X-Client-Info, Apikey" {
		t.Fatalf("allow-headers: got %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE, OPTIONS" {
		t.Fatalf("allow-methods: got %q", got)
	}
}

func TestCORS_HeadersOnErrors(t *testing.T) {
	e := echo.New()
	e.Pre(CORS())
	e.POST("/delete-user", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
	})

	req := httptest.NewRequest(http.MethodPost, "/delete-user", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin missing on error response: %q", got)
	}
}

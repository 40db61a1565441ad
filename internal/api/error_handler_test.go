package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mtcleaning/account-service/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", domain.NewError(domain.ErrValidation, "JSON body required"), http.StatusBadRequest, "JSON body required"},
		{"unauthenticated", domain.NewError(domain.ErrUnauthenticated, "Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", domain.NewError(domain.ErrForbidden, "Unauthorized: Admin access required"), http.StatusForbidden, "Unauthorized: Admin access required"},
		{"upstream", domain.NewError(domain.ErrUpstream, "A user with this email address has already been registered"), http.StatusBadRequest, "A user with this email address has already been registered"},
		{"configuration", domain.NewError(domain.ErrConfiguration, "Missing env var: SUPABASE_URL"), http.StatusInternalServerError, "Missing env var: SUPABASE_URL"},
		{"rate limited", domain.NewError(domain.ErrRateLimited, "Too many requests"), http.StatusTooManyRequests, "Too many requests"},
		{"audit unavailable", domain.NewError(domain.ErrAuditUnavailable, "audit trail not configured"), http.StatusServiceUnavailable, "audit trail not configured"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "Bearer token required"), http.StatusUnauthorized, "Bearer token required"},
		{"unknown", errors.New("User created but missing user id"), http.StatusInternalServerError, "User created but missing user id"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/create-user", nil), rec)

			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mtcleaning/account-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain error
// kinds to HTTP status codes and renders {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (401 from the auth middleware, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, domain.Message(err)
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.Message(err)
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.Message(err)
	case errors.Is(err, domain.ErrUpstream):
		// The dashboard shows provider messages verbatim ("already registered").
		return http.StatusBadRequest, domain.Message(err)
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, domain.Message(err)
	case errors.Is(err, domain.ErrAuditUnavailable):
		return http.StatusServiceUnavailable, domain.Message(err)
	case errors.Is(err, domain.ErrConfiguration):
		log.Error().Err(err).Str("path", c.Path()).Msg("service misconfigured")
		return http.StatusInternalServerError, domain.Message(err)
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}

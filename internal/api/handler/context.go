package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mtcleaning/account-service/internal/api/middleware"
	"github.com/mtcleaning/account-service/internal/core/domain"
	"github.com/mtcleaning/account-service/internal/core/ports"
)

var errJSONBody = domain.NewError(domain.ErrValidation, "JSON body required")

// ctxCaller extracts what the Auth middleware injected. A missing token
// means the middleware did not run for this route; reject with 401.
func ctxCaller(c echo.Context) (ports.Caller, error) {
	token, _ := c.Get(middleware.ContextKeyToken).(string)
	if token == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
	}
	subject, _ := c.Get(middleware.ContextKeyCallerID).(string)

	return ports.Caller{
		Token:     token,
		Subject:   subject,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}, nil
}

// decodeJSON reads the request body as a single JSON value regardless of
// Content-Type, the way the dashboard's function client sends it. Anything
// after that value is rejected. A field of the wrong type is reported by
// name.
func decodeJSON(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewError(domain.ErrValidation, fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
		}
		return errJSONBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errJSONBody
	}
	return nil
}

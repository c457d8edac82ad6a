package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"forestinv/internal/auth"
	apperrors "forestinv/internal/errors"
)

// httpError translates a domain error into an echo error carrying the
// standard {error, code} body. Unknown errors become a generic 500.
func httpError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// currentIdentity returns the authenticated identity or a 401.
func currentIdentity(c echo.Context) (*auth.Identity, error) {
	id, ok := auth.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

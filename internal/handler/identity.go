package handler

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"quill/internal/auth"
	errs "quill/internal/errors"
)

// currentIdentity resolves the authenticated identity placed in context by
// the JWT middleware. Returns nil for anonymous requests: routes behind the
// optional middleware reach handlers without a token, and the required
// middleware has already rejected invalid ones.
func currentIdentity(c echo.Context) *auth.Identity {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims.Identity()
}

// toHTTPError translates a domain error into the wire error shape.
func toHTTPError(err error) *echo.HTTPError {
	he := errs.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

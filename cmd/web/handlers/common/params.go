package common

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireParam extracts a non-empty route parameter or returns a 400 error.
func RequireParam(c echo.Context, param string) (string, error) {
	v := strings.TrimSpace(c.Param(param))
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing "+param)
	}
	return v, nil
}

// RequireQuery extracts a non-empty query parameter or returns a 400 error.
func RequireQuery(c echo.Context, param string) (string, error) {
	v := strings.TrimSpace(c.QueryParam(param))
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing "+param)
	}
	return v, nil
}

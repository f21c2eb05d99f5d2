package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// NoRouteMatched replies to unmatched routes with handler instead of
// echo's default body
func NoRouteMatched(handler echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			var he *echo.HTTPError
			if errors.As(err, &he) && he.Code == http.StatusNotFound {
				return handler(c)
			}
			return err
		}
	}
}

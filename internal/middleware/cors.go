package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	allowedHeaders = "Content-Type, Authorization, X-Requested-With"
)

// CORS sets permissive cross-origin headers on every response and
// short-circuits preflight requests with 200. The gallery SPA may be served
// from a different origin than the gateway, and image bytes are fetched
// cross-origin by <img> tags, so all origins are allowed.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			headers := c.Response().Header()
			headers.Set("Access-Control-Allow-Origin", "*")
			headers.Set("Access-Control-Allow-Methods", allowedMethods)
			headers.Set("Access-Control-Allow-Headers", allowedHeaders)

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// Recovery converts handler panics into JSON 500 responses. Installed
// outermost so a panic anywhere in the chain still yields a well-formed
// response instead of a dropped connection.
func Recovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (returnErr error) {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("panic recovered",
						slog.Any("panic", r),
						slog.String("path", c.Request().URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					returnErr = c.JSON(http.StatusInternalServerError, map[string]string{
						"type":    "internal_error",
						"message": "An internal error occurred",
					})
				}
			}()
			return next(c)
		}
	}
}

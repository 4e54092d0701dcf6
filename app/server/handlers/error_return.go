package handlers

import (
	"fmt"
	"github.com/Community-Cleanup/Co-Cleanup-Server/app/server/autherr"
	"github.com/labstack/echo/v4"
	"net/http"
)

// er renders the uniform error body for a bare status code.
func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &autherr.Response{
		ErrorMessage: fmt.Sprintf("Error: (%s)", http.StatusText(statusCode)),
	})
}

// erm renders the uniform error body with a route-specific message.
func (a *App) erm(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &autherr.Response{
		ErrorMessage: fmt.Sprintf("Error: (%s) %s", http.StatusText(statusCode), message),
	})
}

// erk renders a taxonomy kind with its canonical status and message.
func (a *App) erk(c echo.Context, kind autherr.Kind) error {
	return c.JSON(kind.Status(), autherr.ResponseFor(kind))
}

// conflict renders a 409 naming the field whose uniqueness was violated.
func (a *App) conflict(c echo.Context, field string, value string) error {
	return c.JSON(autherr.KindConflict.Status(), autherr.ConflictResponse(field, value))
}

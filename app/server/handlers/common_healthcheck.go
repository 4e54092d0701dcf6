package handlers

import (
	"github.com/labstack/echo/v4"
	"net/http"
)

// HealthCheck answers liveness checks with a bare 200 and no body. No auth,
// no dependency round trips.
func (a *App) HealthCheck(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

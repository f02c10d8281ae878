package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness. It checks nothing downstream: the process
// serving requests is the signal.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

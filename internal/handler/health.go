package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers liveness probes. It deliberately checks nothing
// downstream: the notes API is up as long as the process can serve
// this route.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

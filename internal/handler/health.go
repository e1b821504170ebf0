package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/view"
)

// Health is used by load balancers and monitoring to check the process is
// up.  It returns a plain "ok".
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// Home renders the landing page.
func (h *Handler) Home(c echo.Context) error {
	return h.render(c, http.StatusOK, view.Home, "", nil)
}

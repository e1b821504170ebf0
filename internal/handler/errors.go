package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/view"
)

// HTTPErrorHandler renders the 404 and 500 pages.  Unexpected errors are
// logged with their details; the page never shows them.  Other HTTP errors
// (405, 413, ...) get a plain-text status line.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}

	var rerr error
	switch {
	case code == http.StatusNotFound:
		rerr = c.Render(code, view.NotFound, view.Page{Title: "Not Found"})
	case code >= http.StatusInternalServerError:
		h.Log.Error().Err(err).Str("method", c.Request().Method).Str("uri", c.Request().RequestURI).
			Msg("unhandled error")
		rerr = c.Render(code, view.ServerError, view.Page{Title: "Server Error"})
	default:
		rerr = c.String(code, http.StatusText(code))
	}
	if rerr != nil {
		h.Log.Error().Err(rerr).Msg("render error page")
		_ = c.NoContent(code)
	}
}

// Package router wires the Fyyur pages and the operational endpoints onto
// an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
)

// Setup installs the validator, renderer, error handler and the global
// middleware chain, then registers every route.
func Setup(e *echo.Echo, h *handler.Handler, r echo.Renderer, m *middleware.Metrics, log zerolog.Logger) {
	e.HideBanner = true
	e.HidePort = true
	e.Validator = form.NewValidator()
	e.Renderer = r
	e.HTTPErrorHandler = h.HTTPErrorHandler

	e.Pre(echomw.MethodOverrideWithConfig(echomw.MethodOverrideConfig{
		Getter: echomw.MethodFromForm("_method"),
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(m.Middleware())

	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	RegisterRoutes(e, h)
}

// RegisterRoutes maps every page to its handler.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	e.GET("/healthz", handler.Health)
	e.GET("/", h.Home)

	v := e.Group("/venues")
	v.GET("", h.ListVenues)
	v.POST("/search", h.SearchVenues)
	v.GET("/create", h.NewVenueForm)
	v.POST("/create", h.CreateVenue)
	v.GET("/:id", h.ShowVenue)
	v.GET("/:id/edit", h.EditVenueForm)
	v.POST("/:id/edit", h.UpdateVenue)
	v.DELETE("/:id", h.DeleteVenue)
	v.POST("/:id/delete", h.DeleteVenue)

	a := e.Group("/artists")
	a.GET("", h.ListArtists)
	a.POST("/search", h.SearchArtists)
	a.GET("/create", h.NewArtistForm)
	a.POST("/create", h.CreateArtist)
	a.GET("/:id", h.ShowArtist)
	a.GET("/:id/edit", h.EditArtistForm)
	a.POST("/:id/edit", h.UpdateArtist)

	s := e.Group("/shows")
	s.GET("", h.ListShows)
	s.GET("/create", h.NewShowForm)
	s.POST("/create", h.CreateShow)
}

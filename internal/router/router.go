package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinematch/internal/handler"
)

// RegisterRoutes registers routes that are not part of the booking API.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCinema registers the seat map and booking endpoints under
// /api/cinema.  cache wraps the read endpoints and limit wraps the booking
// endpoints; pass nil to skip either.
func RegisterCinema(e *echo.Echo, h *handler.CinemaHandler, cache, limit echo.MiddlewareFunc) {
	g := e.Group("/api/cinema")

	var read, write []echo.MiddlewareFunc
	if cache != nil {
		read = append(read, cache)
	}
	if limit != nil {
		write = append(write, limit)
	}

	// Seat map and occupancy
	g.GET("/view", h.View, read...)
	g.GET("/stats", h.Stats, read...)

	// Bookings.  reserve is a GET so it can be tried from a browser.
	g.GET("/reserve", h.Reserve, write...)
	g.POST("/squad-book", h.SquadBook, write...)
}

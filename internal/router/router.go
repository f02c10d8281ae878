// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/cinetick/movie-booking/internal/handler"
	"github.com/cinetick/movie-booking/internal/middleware"
)

// RegisterHealth registers routes that require no authentication.
func RegisterHealth(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers registration and login under /auth, plus the
// authenticated /v1/me identity endpoint.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterCatalog registers the venue/movie/show catalog. Mutations
// require the ADMIN role; listings require any authenticated user. The
// live seat map of a show is public so guests can browse availability
// before logging in.
func RegisterCatalog(e *echo.Echo, v *handler.VenueHandler, m *handler.MovieHandler, s *handler.ShowHandler, jwtSecret string) {
	admin := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)
	admin.POST("/venues", v.CreateVenue)
	admin.POST("/movies", m.CreateMovie)
	admin.POST("/shows", s.CreateShow)

	authed := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "USER"),
	)
	authed.GET("/venues", v.ListVenues)
	authed.GET("/venues/:id", v.GetVenue)
	authed.GET("/movies", m.ListMovies)
	authed.GET("/shows", s.ListShows)

	e.GET("/v1/shows/:id/seats", s.ShowSeats)
}

// RegisterBooking registers the reservation endpoints for customers. The
// rate limiter guards the endpoints that mutate seat state; passing a nil
// limiter (no Redis) leaves them unthrottled.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER"),
	}
	if limiter != nil {
		mws = append(mws, limiter)
	}
	g := e.Group("/v1", mws...)
	g.POST("/shows/:id/hold", b.HoldSeats)
	g.POST("/holds/:id/confirm", b.ConfirmHold)
	g.DELETE("/holds/:id", b.ReleaseHold)
	g.GET("/my-bookings", b.MyBookings)
}

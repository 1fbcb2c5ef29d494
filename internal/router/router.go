package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/movie-ticket-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/movie-ticket-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access issues a new access
	// token without rotating the refresh token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts a JSON body containing a `refresh_token` and invalidates
	// it.  No JWT is required, so expired sessions can still be terminated.
	g.POST("/logout", a.Logout)

	// Routes below require a valid access token.  Any authenticated role is
	// accepted; the middleware rejects requests with missing or unknown roles.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	// Return the authenticated user's information.
	auth.GET("/me", a.Me)

	// Also map POST /v1/logout to the same handler so clients can call either
	// path with a valid refresh token in the body to terminate a session.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler exposes sanitized catalog data for
// movies, shows and theaters.  The optional middleware (typically the Redis
// response cache) is applied to every public route; no JWT or role checks
// are performed so guests can browse before registering.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// Movie catalog: active movies newest release first, with optional
	// ?search= and ?genre= filters.
	g.GET("/movies", p.GetMovies)
	// Movie detail together with its scheduled shows.
	g.GET("/movies/:id", p.GetMovie)
	// All shows joined with movie and theater names, ordered by date and time.
	g.GET("/shows", p.GetShows)
	// Single show with live seat availability for the booking page.
	g.GET("/shows/:id", p.GetShow)
	// All theaters.
	g.GET("/theaters", p.GetTheaters)
}

package router

// This file registers admin-only routes for managing the catalog.  The
// routes defined here allow administrators to create and update movies,
// theaters and show schedules.  They are separate from the customer
// routes to keep concerns isolated.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Movies ----
	g.POST("/movies", h.CreateMovie)
	g.PUT("/movies/:id", h.UpdateMovie)

	// ---- Theaters ----
	g.POST("/theaters", h.CreateTheater)

	// ---- Shows ----
	g.POST("/shows", h.CreateShow)
	// Price changes apply to future bookings only; existing bookings keep
	// their frozen totals.
	g.PATCH("/shows/:id/price", h.UpdateShowPrice)
}

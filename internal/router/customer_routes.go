package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/middleware"
)

// RegisterCustomer registers the booking and payment endpoints under /v1.
// All routes require a valid JWT; both CUSTOMER and ADMIN roles may book.
// Customers reserve seats on a show, pay for a pending booking, view a
// single booking confirmation and list their own booking history.
func RegisterCustomer(e *echo.Echo, b *handler.BookingHandler, p *handler.PaymentHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER", "ADMIN"),
	)
	// Reserve seats on a show; the booking is created PENDING and seats are
	// decremented atomically under a row lock.
	g.POST("/shows/:id/book", b.BookSeats)
	// Submit payment details for a pending booking.
	g.POST("/bookings/:id/payment", p.SubmitPayment)
	// Accepted payment methods, for rendering the payment form.
	g.GET("/payment-methods", p.PaymentMethods)
	// Booking confirmation; only visible to the owning user.
	g.GET("/bookings/:id", b.GetBooking)
	// Booking history, newest first.
	g.GET("/my-bookings", b.ListBookings)
}

package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/movie-ticket-booking/internal/repository"
    "github.com/iliyamo/movie-ticket-booking/internal/service"
)

// BookingHandler groups the booking service and the booking repository
// needed to create bookings and list a customer's booking history.
// All methods assume JWT authentication has already been performed by
// middleware; a missing identity yields 401.
type BookingHandler struct {
    Bookings    *service.BookingService
    BookingRepo *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// dependencies.  All dependencies must be non-nil.
func NewBookingHandler(bookings *service.BookingService, bookingRepo *repository.BookingRepo) *BookingHandler {
    if bookings == nil || bookingRepo == nil {
        panic("nil dependency passed to NewBookingHandler")
    }
    return &BookingHandler{Bookings: bookings, BookingRepo: bookingRepo}
}

// BookSeats handles POST /v1/shows/:id/book.  The request body carries
// a JSON object with a "seats" count.  On success it returns 201 with
// the pending booking; the client proceeds to the payment endpoint.
//
// Failure mapping follows the service errors: malformed input is 400,
// a pre-lock availability shortfall and a lost race are both 409 but
// with distinct messages, an unknown show is 404.
func (h *BookingHandler) BookSeats(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    showID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
    }

    var body struct {
        Seats int `json:"seats"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    booking, err := h.Bookings.Reserve(c.Request().Context(), userID, showID, body.Seats)
    if err != nil {
        switch {
        case errors.Is(err, service.ErrAuthenticationRequired):
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        case errors.Is(err, service.ErrInvalidRequest):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "please select at least one seat"})
        case errors.Is(err, repository.ErrShowNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
        case errors.Is(err, service.ErrInsufficientSeats):
            return c.JSON(http.StatusConflict, echo.Map{"error": "not enough seats available"})
        case errors.Is(err, service.ErrSeatsNoLongerAvailable):
            return c.JSON(http.StatusConflict, echo.Map{"error": "seats no longer available, another user may have just booked"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
    }

    return c.JSON(http.StatusCreated, echo.Map{
        "booking_id":     booking.ID,
        "show_id":        booking.ShowID,
        "seats_booked":   booking.SeatsBooked,
        "total_price":    booking.TotalPrice,
        "payment_status": booking.PaymentStatus,
    })
}

// ListBookings handles GET /v1/my-bookings.  It returns the user's
// booking history joined with show, movie and theater details, newest
// first.  When no bookings exist, it returns an empty array.
func (h *BookingHandler) ListBookings(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    items, err := h.BookingRepo.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id, the confirmation view.  It
// returns the booking only to its owner; other users see 404 so the
// existence of foreign bookings is not leaked.
func (h *BookingHandler) GetBooking(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    booking, err := h.BookingRepo.GetByIDForUser(c.Request().Context(), bookingID, userID)
    if err != nil {
        if errors.Is(err, repository.ErrBookingNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch booking"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": booking})
}

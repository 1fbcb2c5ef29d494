package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
    "github.com/iliyamo/movie-ticket-booking/internal/queue"
    "github.com/iliyamo/movie-ticket-booking/internal/repository"
    "github.com/iliyamo/movie-ticket-booking/internal/service"
)

// PaymentHandler exposes the simulated payment endpoint for pending
// bookings.  Publish emits the completion event; it is a field so tests
// can observe (or silence) it.
type PaymentHandler struct {
    Payments *service.PaymentService
    Publish  func(ctx context.Context, ev queue.PaymentCompletedEvent) error
}

// NewPaymentHandler constructs a PaymentHandler wired to the RabbitMQ
// publisher.
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
    if payments == nil {
        panic("nil service passed to NewPaymentHandler")
    }
    return &PaymentHandler{Payments: payments, Publish: queue.PublishPaymentCompleted}
}

// SubmitPayment handles POST /v1/bookings/:id/payment.  The body is a
// service.PaymentRequest: a payment_method plus its detail fields.
//
// Responses:
//   200 – payment completed (or booking was already completed; the
//         original payment_id and payment_date are returned unchanged)
//   400 – unknown method or field validation errors ("errors" array);
//         the booking stays PENDING
//   402 – simulated gateway decline; the booking is FAILED and can be
//         re-submitted
//   404 – booking unknown or owned by another user
//
// Only a fresh completion publishes a payment.completed event for the
// background consumer; resubmitting an already-completed booking emits
// nothing.  Publish failures are logged and ignored so the payment
// result always reaches the client.
func (h *PaymentHandler) SubmitPayment(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookingID, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
    }

    var req service.PaymentRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }

    booking, fresh, err := h.Payments.Pay(c.Request().Context(), userID, bookingID, req)
    if err != nil {
        var verr *service.ValidationError
        switch {
        case errors.Is(err, service.ErrAuthenticationRequired):
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
        case errors.Is(err, repository.ErrBookingNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
        case errors.Is(err, service.ErrInvalidRequest):
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "please select a payment method"})
        case errors.As(err, &verr):
            return c.JSON(http.StatusBadRequest, echo.Map{"errors": verr.Messages})
        case errors.Is(err, service.ErrPaymentDeclined):
            return c.JSON(http.StatusPaymentRequired, echo.Map{
                "error":          "payment failed, please check your payment details and try again",
                "payment_status": booking.PaymentStatus,
            })
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment processing error"})
    }

    if fresh && booking.PaymentID != nil && h.Publish != nil {
        ev := queue.PaymentCompletedEvent{
            BookingID:   booking.ID,
            UserID:      booking.UserID,
            ShowID:      booking.ShowID,
            SeatsBooked: booking.SeatsBooked,
            TotalPrice:  booking.TotalPrice.StringFixed(2),
            PaymentID:   *booking.PaymentID,
            PaidAt:      paymentTime(booking).Format(time.RFC3339),
        }
        if err := h.Publish(c.Request().Context(), ev); err != nil {
            c.Logger().Warnf("payment event publish failed: %v", err)
        }
    }

    return c.JSON(http.StatusOK, echo.Map{
        "booking_id":     booking.ID,
        "payment_status": booking.PaymentStatus,
        "payment_id":     booking.PaymentID,
        "payment_date":   booking.PaymentDate,
        "total_price":    booking.TotalPrice,
    })
}

// PaymentMethods handles GET /v1/payment-methods.  It lists the
// accepted methods so clients can render the payment form.
func (h *PaymentHandler) PaymentMethods(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"methods": model.PaymentMethods})
}

func paymentTime(b *model.Booking) time.Time {
    if b.PaymentDate != nil {
        return *b.PaymentDate
    }
    return time.Now().UTC()
}

package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/queue"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

const validCardBody = `{"payment_method":"CREDIT_CARD","card_number":"1234567812345678",` +
	`"card_holder":"John Doe","expiry_date":"12/25","cvv":"123"}`

func paymentRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/11/payment", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/bookings/:id/payment")
	c.SetParamNames("id")
	c.SetParamValues("11")
	c.Set("user_id", uint64(42))
	return c, rec
}

func pendingPaymentBooking() *model.Booking {
	return &model.Booking{
		ID:            11,
		UserID:        42,
		ShowID:        7,
		SeatsBooked:   3,
		TotalPrice:    decimal.RequireFromString("750.00"),
		PaymentStatus: model.PaymentPending,
	}
}

func completedPaymentBooking() *model.Booking {
	method := model.MethodCreditCard
	payID := "PAY3F0A9C21D4E5"
	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	b := pendingPaymentBooking()
	b.PaymentStatus = model.PaymentCompleted
	b.PaymentMethod = &method
	b.PaymentID = &payID
	b.PaymentDate = &when
	return b
}

// paymentHandlerWith builds a PaymentHandler whose publisher records
// every emitted event instead of touching a broker.
func paymentHandlerWith(store *stubBookingStore) (*handler.PaymentHandler, *[]queue.PaymentCompletedEvent) {
	var published []queue.PaymentCompletedEvent
	svc := service.NewPaymentService(store, 0, func() float64 { return 0.99 })
	h := &handler.PaymentHandler{
		Payments: svc,
		Publish: func(ctx context.Context, ev queue.PaymentCompletedEvent) error {
			published = append(published, ev)
			return nil
		},
	}
	return h, &published
}

func TestSubmitPayment_FreshCompletionPublishes(t *testing.T) {
	store := &stubBookingStore{booking: pendingPaymentBooking(), settled: completedPaymentBooking()}
	h, published := paymentHandlerWith(store)

	c, rec := paymentRequest(t, validCardBody)
	require.NoError(t, h.SubmitPayment(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *published, 1)
	ev := (*published)[0]
	assert.Equal(t, uint64(11), ev.BookingID)
	assert.Equal(t, uint64(42), ev.UserID)
	assert.Equal(t, uint32(3), ev.SeatsBooked)
	assert.Equal(t, "750.00", ev.TotalPrice)
	assert.Equal(t, "PAY3F0A9C21D4E5", ev.PaymentID)
}

// Resubmitting a payment for an already-completed booking returns the
// original payment unchanged and must not emit a second event.
func TestSubmitPayment_ResubmitDoesNotPublish(t *testing.T) {
	store := &stubBookingStore{booking: completedPaymentBooking()}
	h, published := paymentHandlerWith(store)

	c, rec := paymentRequest(t, validCardBody)
	require.NoError(t, h.SubmitPayment(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "PAY3F0A9C21D4E5")
	assert.Empty(t, *published)
}

func TestSubmitPayment_DeclinedDoesNotPublish(t *testing.T) {
	declined := pendingPaymentBooking()
	declined.PaymentStatus = model.PaymentFailed
	store := &stubBookingStore{booking: pendingPaymentBooking(), settled: declined}

	var published []queue.PaymentCompletedEvent
	svc := service.NewPaymentService(store, 1, func() float64 { return 0.0 })
	h := &handler.PaymentHandler{
		Payments: svc,
		Publish: func(ctx context.Context, ev queue.PaymentCompletedEvent) error {
			published = append(published, ev)
			return nil
		},
	}

	c, rec := paymentRequest(t, validCardBody)
	require.NoError(t, h.SubmitPayment(c))

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Empty(t, published)
}

func TestSubmitPayment_ValidationErrorsReported(t *testing.T) {
	store := &stubBookingStore{booking: pendingPaymentBooking()}
	h, published := paymentHandlerWith(store)

	c, rec := paymentRequest(t, `{"payment_method":"UPI","upi_id":"nouatmark"}`)
	require.NoError(t, h.SubmitPayment(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid UPI ID. Format: username@bank")
	assert.Empty(t, *published)
}

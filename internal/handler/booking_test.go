package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/handler"
	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

// stubShowStore and stubBookingStore satisfy the service store
// interfaces with injectable behavior, so handler tests run the real
// service logic without a database.
type stubShowStore struct {
	show *model.Show
	err  error
}

func (s *stubShowStore) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
	return s.show, s.err
}

type stubBookingStore struct {
	booking    *model.Booking
	settled    *model.Booking // returned by SettlePayment when set
	reserveErr error
}

func (s *stubBookingStore) Reserve(ctx context.Context, userID, showID uint64, seats uint32) (*model.Booking, error) {
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	return s.booking, nil
}

func (s *stubBookingStore) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	return s.booking, nil
}

func (s *stubBookingStore) SettlePayment(ctx context.Context, bookingID, userID uint64, method model.PaymentMethod, paymentID string, approved bool) (*model.Booking, error) {
	if s.settled != nil {
		return s.settled, nil
	}
	return s.booking, nil
}

func bookRequest(t *testing.T, body string, userID interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/shows/7/book", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/shows/:id/book")
	c.SetParamNames("id")
	c.SetParamValues("7")
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c, rec
}

func newBookingHandler(shows service.ShowStore, bookings *stubBookingStore) *handler.BookingHandler {
	svc := service.NewBookingService(shows, bookings)
	// The repository is only used by list/detail endpoints; BookSeats
	// never touches it, so a zero-value repo is fine here.
	return &handler.BookingHandler{Bookings: svc, BookingRepo: &repository.BookingRepo{}}
}

func TestBookSeats_Created(t *testing.T) {
	show := &model.Show{ID: 7, Price: decimal.RequireFromString("12.50"), AvailableSeats: 40}
	booking := &model.Booking{
		ID:            3,
		UserID:        9,
		ShowID:        7,
		SeatsBooked:   2,
		TotalPrice:    decimal.RequireFromString("25.00"),
		PaymentStatus: model.PaymentPending,
	}
	h := newBookingHandler(&stubShowStore{show: show}, &stubBookingStore{booking: booking})

	c, rec := bookRequest(t, `{"seats":2}`, uint64(9))
	require.NoError(t, h.BookSeats(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"booking_id":3`)
	assert.Contains(t, rec.Body.String(), `"payment_status":"PENDING"`)
}

func TestBookSeats_MissingIdentity(t *testing.T) {
	h := newBookingHandler(&stubShowStore{}, &stubBookingStore{})

	c, rec := bookRequest(t, `{"seats":2}`, nil)
	require.NoError(t, h.BookSeats(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBookSeats_NonPositiveSeats(t *testing.T) {
	h := newBookingHandler(&stubShowStore{}, &stubBookingStore{})

	c, rec := bookRequest(t, `{"seats":0}`, uint64(9))
	require.NoError(t, h.BookSeats(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookSeats_ShowNotFound(t *testing.T) {
	h := newBookingHandler(&stubShowStore{err: repository.ErrShowNotFound}, &stubBookingStore{})

	c, rec := bookRequest(t, `{"seats":2}`, uint64(9))
	require.NoError(t, h.BookSeats(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookSeats_InsufficientSeats(t *testing.T) {
	show := &model.Show{ID: 7, Price: decimal.RequireFromString("12.50"), AvailableSeats: 1}
	h := newBookingHandler(&stubShowStore{show: show}, &stubBookingStore{})

	c, rec := bookRequest(t, `{"seats":5}`, uint64(9))
	require.NoError(t, h.BookSeats(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "not enough seats")
}

func TestBookSeats_LostRace(t *testing.T) {
	show := &model.Show{ID: 7, Price: decimal.RequireFromString("12.50"), AvailableSeats: 10}
	h := newBookingHandler(&stubShowStore{show: show}, &stubBookingStore{reserveErr: repository.ErrSeatsTaken})

	c, rec := bookRequest(t, `{"seats":2}`, uint64(9))
	require.NoError(t, h.BookSeats(c))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no longer available")
}

// The string form of the user id stored by the JWT middleware must be
// accepted as well; the claim arrives as a number or string depending
// on how the token was minted.
func TestBookSeats_StringUserID(t *testing.T) {
	show := &model.Show{ID: 7, Price: decimal.RequireFromString("10.00"), AvailableSeats: 40}
	booking := &model.Booking{ID: 4, UserID: 9, ShowID: 7, SeatsBooked: 1,
		TotalPrice: decimal.RequireFromString("10.00"), PaymentStatus: model.PaymentPending}
	h := newBookingHandler(&stubShowStore{show: show}, &stubBookingStore{booking: booking})

	c, rec := bookRequest(t, `{"seats":1}`, "9")
	require.NoError(t, h.BookSeats(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
}

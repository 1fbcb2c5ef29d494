package service_test

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-ticket-booking/internal/model"
	"github.com/iliyamo/movie-ticket-booking/internal/repository"
	"github.com/iliyamo/movie-ticket-booking/internal/service"
)

func showWithSeats(available uint32, price string) *model.Show {
	return &model.Show{
		ID:             7,
		MovieID:        1,
		TheaterID:      2,
		Price:          decimal.RequireFromString(price),
		AvailableSeats: available,
	}
}

func TestReserve_Success(t *testing.T) {
	shows := new(mockShowStore)
	bookings := new(mockBookingStore)
	svc := service.NewBookingService(shows, bookings)
	ctx := context.Background()

	shows.On("GetByID", ctx, uint64(7)).Return(showWithSeats(5, "250.00"), nil)
	bookings.On("Reserve", ctx, uint64(42), uint64(7), uint32(3)).Return(&model.Booking{
		ID:            11,
		UserID:        42,
		ShowID:        7,
		SeatsBooked:   3,
		TotalPrice:    decimal.RequireFromString("750.00"),
		PaymentStatus: model.PaymentPending,
	}, nil)

	b, err := svc.Reserve(ctx, 42, 7, 3)

	require.NoError(t, err)
	assert.Equal(t, model.PaymentPending, b.PaymentStatus)
	assert.True(t, b.TotalPrice.Equal(decimal.RequireFromString("750.00")))
	bookings.AssertExpectations(t)
}

func TestReserve_RequiresAuthentication(t *testing.T) {
	svc := service.NewBookingService(new(mockShowStore), new(mockBookingStore))

	_, err := svc.Reserve(context.Background(), 0, 7, 2)

	assert.ErrorIs(t, err, service.ErrAuthenticationRequired)
}

func TestReserve_RejectsNonPositiveSeats(t *testing.T) {
	svc := service.NewBookingService(new(mockShowStore), new(mockBookingStore))

	for _, seats := range []int{0, -1, -50} {
		_, err := svc.Reserve(context.Background(), 42, 7, seats)
		assert.ErrorIs(t, err, service.ErrInvalidRequest, "seats=%d", seats)
	}
}

// Seat counts beyond the uint32 column range must be rejected before
// conversion; 1<<32 would otherwise truncate to 0 and 1<<32+3 would
// silently book 3 seats.
func TestReserve_RejectsSeatsBeyondUint32(t *testing.T) {
	shows := new(mockShowStore)
	bookings := new(mockBookingStore)
	svc := service.NewBookingService(shows, bookings)
	ctx := context.Background()

	shows.On("GetByID", ctx, uint64(7)).Return(showWithSeats(5, "250.00"), nil)

	for _, seats := range []int{1 << 32, 1<<32 + 3, math.MaxInt} {
		_, err := svc.Reserve(ctx, 42, 7, seats)
		assert.ErrorIs(t, err, service.ErrInvalidRequest, "seats=%d", seats)
	}
	bookings.AssertNotCalled(t, "Reserve")
}

func TestReserve_ShowNotFound(t *testing.T) {
	shows := new(mockShowStore)
	svc := service.NewBookingService(shows, new(mockBookingStore))
	ctx := context.Background()

	shows.On("GetByID", ctx, uint64(99)).Return(nil, repository.ErrShowNotFound)

	_, err := svc.Reserve(ctx, 42, 99, 1)

	assert.ErrorIs(t, err, repository.ErrShowNotFound)
}

func TestReserve_InsufficientSeatsBeforeLock(t *testing.T) {
	shows := new(mockShowStore)
	bookings := new(mockBookingStore)
	svc := service.NewBookingService(shows, bookings)
	ctx := context.Background()

	shows.On("GetByID", ctx, uint64(7)).Return(showWithSeats(2, "250.00"), nil)

	_, err := svc.Reserve(ctx, 42, 7, 3)

	assert.ErrorIs(t, err, service.ErrInsufficientSeats)
	bookings.AssertNotCalled(t, "Reserve")
}

func TestReserve_RaceLostAfterLock(t *testing.T) {
	shows := new(mockShowStore)
	bookings := new(mockBookingStore)
	svc := service.NewBookingService(shows, bookings)
	ctx := context.Background()

	// The pre-lock check sees enough seats but the store's re-check
	// under the row lock fails: a concurrent booking got there first.
	shows.On("GetByID", ctx, uint64(7)).Return(showWithSeats(5, "250.00"), nil)
	bookings.On("Reserve", ctx, uint64(42), uint64(7), uint32(3)).Return(nil, repository.ErrSeatsTaken)

	_, err := svc.Reserve(ctx, 42, 7, 3)

	assert.ErrorIs(t, err, service.ErrSeatsNoLongerAvailable)
	assert.NotErrorIs(t, err, service.ErrInsufficientSeats)
}

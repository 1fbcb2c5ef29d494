package service

import (
    "context"
    "errors"
    "math"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
    "github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// ShowStore is the subset of the show repository the services need.
type ShowStore interface {
    GetByID(ctx context.Context, id uint64) (*model.Show, error)
}

// BookingStore is the subset of the booking repository the services
// need. Reserve and SettlePayment must be atomic with respect to
// concurrent calls on the same show / booking row; the SQL
// implementation uses SELECT ... FOR UPDATE transactions.
type BookingStore interface {
    Reserve(ctx context.Context, userID, showID uint64, seats uint32) (*model.Booking, error)
    GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error)
    SettlePayment(ctx context.Context, bookingID, userID uint64, method model.PaymentMethod, paymentID string, approved bool) (*model.Booking, error)
}

// BookingService reserves seats on shows for authenticated users.
type BookingService struct {
    shows    ShowStore
    bookings BookingStore
}

// NewBookingService constructs a BookingService and panics if a
// dependency is nil.
func NewBookingService(shows ShowStore, bookings BookingStore) *BookingService {
    if shows == nil || bookings == nil {
        panic("nil store passed to NewBookingService")
    }
    return &BookingService{shows: shows, bookings: bookings}
}

// Reserve attempts to book the requested number of seats on a show.
//
// The cheap checks run first: the caller must be authenticated and the
// seat count positive and within the uint32 range of the seat columns,
// so the conversion below can never truncate a huge request into a
// small (or zero) one. The availability pre-check against the current
// show row filters out hopeless requests without taking a lock; it is
// advisory only, so the store re-validates under an exclusive row lock
// and the final word is its. A request that passes the pre-check but
// loses the race surfaces as ErrSeatsNoLongerAvailable, distinct from
// the pre-lock ErrInsufficientSeats.
//
// On success the returned booking is in PENDING payment status with
// total_price frozen to seats × the price at booking time.
func (s *BookingService) Reserve(ctx context.Context, userID, showID uint64, seats int) (*model.Booking, error) {
    if userID == 0 {
        return nil, ErrAuthenticationRequired
    }
    if seats <= 0 || int64(seats) > math.MaxUint32 {
        return nil, ErrInvalidRequest
    }

    show, err := s.shows.GetByID(ctx, showID)
    if err != nil {
        return nil, err
    }
    if uint32(seats) > show.AvailableSeats {
        return nil, ErrInsufficientSeats
    }

    booking, err := s.bookings.Reserve(ctx, userID, showID, uint32(seats))
    if err != nil {
        if errors.Is(err, repository.ErrSeatsTaken) {
            return nil, ErrSeatsNoLongerAvailable
        }
        return nil, err
    }
    return booking, nil
}

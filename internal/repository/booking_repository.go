// Package repository contains data access logic for bookings. This file
// implements the two mutations that touch shared rows — seat
// reservation and payment settlement — as single transactions built
// around SELECT ... FOR UPDATE, so concurrent requests against the same
// show or booking serialize at the storage layer. In-process locking
// would not be enough: multiple server processes may run at once.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
)

// BookingRepo manages persistence for bookings.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `id, user_id, show_id, seats_booked, total_price, payment_status, payment_method, payment_id, payment_date, booking_date`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
    var b model.Booking
    var method, payID sql.NullString
    var payDate sql.NullTime
    err := row.Scan(
        &b.ID, &b.UserID, &b.ShowID, &b.SeatsBooked, &b.TotalPrice,
        &b.PaymentStatus, &method, &payID, &payDate, &b.BookingDate,
    )
    if err != nil {
        return nil, err
    }
    if method.Valid {
        m := model.PaymentMethod(method.String)
        b.PaymentMethod = &m
    }
    if payID.Valid {
        p := payID.String
        b.PaymentID = &p
    }
    if payDate.Valid {
        t := payDate.Time
        b.PaymentDate = &t
    }
    return &b, nil
}

// Reserve atomically books seats on a show. Within one transaction it
// re-reads the show row under an exclusive lock, re-validates
// availability, inserts the booking in PENDING status with the total
// frozen from the locked price, and decrements available_seats. All
// three happen or none do.
//
// It returns ErrShowNotFound for unknown shows and ErrSeatsTaken when
// the re-check under the lock fails — the caller passed a pre-lock
// availability check but lost the race.
func (r *BookingRepo) Reserve(ctx context.Context, userID, showID uint64, seats uint32) (*model.Booking, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    // Lock the show row. Concurrent Reserve calls for the same show
    // block here until this transaction commits or rolls back.
    var price decimal.Decimal
    var available uint32
    const lockQ = `SELECT price, available_seats FROM shows WHERE id = ? FOR UPDATE`
    if err := tx.QueryRowContext(ctx, lockQ, showID).Scan(&price, &available); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrShowNotFound
        }
        return nil, err
    }

    if seats > available {
        return nil, ErrSeatsTaken
    }

    total := price.Mul(decimal.NewFromInt(int64(seats)))

    const insQ = `INSERT INTO bookings (user_id, show_id, seats_booked, total_price, payment_status)
                  VALUES (?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, insQ, userID, showID, seats, total, string(model.PaymentPending))
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }

    const decQ = `UPDATE shows SET available_seats = available_seats - ? WHERE id = ?`
    if _, err := tx.ExecContext(ctx, decQ, seats, showID); err != nil {
        return nil, err
    }

    // Read the inserted row back so the caller sees DB defaults
    // (booking_date in particular).
    const sel = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ?`
    booking, err := scanBooking(tx.QueryRowContext(ctx, sel, uint64(id)))
    if err != nil {
        return nil, err
    }

    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return booking, nil
}

// GetByIDForUser returns a booking belonging to the given user.  It
// returns ErrBookingNotFound both for unknown IDs and for bookings
// owned by someone else.
func (r *BookingRepo) GetByIDForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
    const q = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ? AND user_id = ?`
    b, err := scanBooking(r.db.QueryRowContext(ctx, q, bookingID, userID))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrBookingNotFound
    }
    return b, err
}

// SettlePayment records the outcome of a payment attempt under the same
// exclusive-lock discipline as Reserve: the booking row is re-fetched
// FOR UPDATE before mutating, serializing concurrent attempts on the
// same booking.
//
// If the locked row is already COMPLETED the attempt is a no-op and the
// existing terminal booking is returned unchanged, keeping payment_id
// and payment_date stable across resubmissions. On approval the method,
// reference id and timestamp are recorded and the booking becomes
// COMPLETED; on decline the booking becomes FAILED with no payment
// fields recorded. Seats are not released on decline.
func (r *BookingRepo) SettlePayment(ctx context.Context, bookingID, userID uint64, method model.PaymentMethod, paymentID string, approved bool) (*model.Booking, error) {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    const lockQ = `SELECT ` + bookingCols + ` FROM bookings WHERE id = ? AND user_id = ? FOR UPDATE`
    booking, err := scanBooking(tx.QueryRowContext(ctx, lockQ, bookingID, userID))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrBookingNotFound
        }
        return nil, err
    }

    if booking.PaymentStatus == model.PaymentCompleted {
        // A concurrent attempt already completed this booking.
        if err := tx.Commit(); err != nil {
            return nil, err
        }
        committed = true
        return booking, nil
    }

    if approved {
        now := time.Now().UTC()
        const q = `UPDATE bookings
                   SET payment_status = ?, payment_method = ?, payment_id = ?, payment_date = ?
                   WHERE id = ?`
        if _, err := tx.ExecContext(ctx, q, string(model.PaymentCompleted), string(method), paymentID, now, bookingID); err != nil {
            return nil, err
        }
        booking.PaymentStatus = model.PaymentCompleted
        booking.PaymentMethod = &method
        booking.PaymentID = &paymentID
        booking.PaymentDate = &now
    } else {
        const q = `UPDATE bookings SET payment_status = ? WHERE id = ?`
        if _, err := tx.ExecContext(ctx, q, string(model.PaymentFailed), bookingID); err != nil {
            return nil, err
        }
        booking.PaymentStatus = model.PaymentFailed
    }

    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return booking, nil
}

// BookingDetail is a booking joined with its show, movie and theater
// for history and confirmation responses.
type BookingDetail struct {
    ID            uint64          `json:"id"`
    ShowID        uint64          `json:"show_id"`
    MovieTitle    string          `json:"movie_title"`
    TheaterName   string          `json:"theater_name"`
    ShowDate      string          `json:"show_date"`
    ShowTime      string          `json:"show_time"`
    SeatsBooked   uint32          `json:"seats_booked"`
    TotalPrice    decimal.Decimal `json:"total_price"`
    PaymentStatus string          `json:"payment_status"`
    PaymentMethod *string         `json:"payment_method,omitempty"`
    PaymentID     *string         `json:"payment_id,omitempty"`
    BookingDate   time.Time       `json:"booking_date"`
}

// ListByUser returns the user's bookings joined with show, movie and
// theater details, newest first.  When no bookings exist an empty
// slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
    const q = `SELECT b.id, b.show_id, m.title, t.name,
                      DATE_FORMAT(s.show_date, '%Y-%m-%d'), TIME_FORMAT(s.show_time, '%H:%i'),
                      b.seats_booked, b.total_price, b.payment_status,
                      b.payment_method, b.payment_id, b.booking_date
               FROM bookings b
               JOIN shows s    ON s.id = b.show_id
               JOIN movies m   ON m.id = s.movie_id
               JOIN theaters t ON t.id = s.theater_id
               WHERE b.user_id = ?
               ORDER BY b.booking_date DESC`
    rows, err := r.db.QueryContext(ctx, q, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]BookingDetail, 0)
    for rows.Next() {
        var d BookingDetail
        var method, payID sql.NullString
        if err := rows.Scan(
            &d.ID, &d.ShowID, &d.MovieTitle, &d.TheaterName, &d.ShowDate, &d.ShowTime,
            &d.SeatsBooked, &d.TotalPrice, &d.PaymentStatus, &method, &payID, &d.BookingDate,
        ); err != nil {
            return nil, err
        }
        if method.Valid {
            v := method.String
            d.PaymentMethod = &v
        }
        if payID.Valid {
            v := payID.String
            d.PaymentID = &v
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

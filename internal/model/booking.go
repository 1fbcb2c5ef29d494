package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// PaymentStatus tracks the payment lifecycle of a booking.  Bookings
// are created PENDING and become terminal via the payment simulator.
// REFUNDED is declared for forward compatibility; no flow currently
// transitions into it.
type PaymentStatus string

const (
    PaymentPending   PaymentStatus = "PENDING"
    PaymentCompleted PaymentStatus = "COMPLETED"
    PaymentFailed    PaymentStatus = "FAILED"
    PaymentRefunded  PaymentStatus = "REFUNDED"
)

// PaymentMethod is the closed set of simulated payment instruments.
type PaymentMethod string

const (
    MethodCreditCard PaymentMethod = "CREDIT_CARD"
    MethodDebitCard  PaymentMethod = "DEBIT_CARD"
    MethodUPI        PaymentMethod = "UPI"
    MethodNetBanking PaymentMethod = "NET_BANKING"
    MethodWallet     PaymentMethod = "WALLET"
)

// PaymentMethods lists every accepted method in display order.
var PaymentMethods = []PaymentMethod{
    MethodCreditCard, MethodDebitCard, MethodUPI, MethodNetBanking, MethodWallet,
}

// Valid reports whether m is one of the declared payment methods.
func (m PaymentMethod) Valid() bool {
    for _, v := range PaymentMethods {
        if m == v {
            return true
        }
    }
    return false
}

// Booking records a user's reservation of seats on a specific show.
// TotalPrice is frozen as seats × show price at creation time; later
// price edits to the show never affect existing bookings.
//
// PaymentMethod, PaymentID and PaymentDate are populated only when the
// payment completes.  A FAILED payment leaves them unset.
//
// Fields:
//  ID            – primary key identifier.
//  UserID        – user who made the booking.
//  ShowID        – show being booked.
//  SeatsBooked   – number of seats reserved (positive).
//  TotalPrice    – frozen total in DECIMAL(10,2).
//  PaymentStatus – PENDING, COMPLETED, FAILED or REFUNDED.
//  PaymentMethod – instrument used for a completed payment (nullable).
//  PaymentID     – payment reference id, e.g. "PAY3F0A9C21D4E5" (nullable).
//  PaymentDate   – when the payment completed (nullable).
//  BookingDate   – creation timestamp.
type Booking struct {
    ID            uint64          // bookings.id
    UserID        uint64          // bookings.user_id
    ShowID        uint64          // bookings.show_id
    SeatsBooked   uint32          // bookings.seats_booked
    TotalPrice    decimal.Decimal // bookings.total_price DECIMAL(10,2)
    PaymentStatus PaymentStatus   // bookings.payment_status
    PaymentMethod *PaymentMethod  // bookings.payment_method (nullable)
    PaymentID     *string         // bookings.payment_id (nullable)
    PaymentDate   *time.Time      // bookings.payment_date (nullable)
    BookingDate   time.Time       // bookings.booking_date
}

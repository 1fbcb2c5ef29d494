package service

import (
    "context"
    "math/rand"
    "strings"

    "github.com/google/uuid"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
)

// PaymentRequest carries a payment method and its method-specific
// detail fields as submitted by the client. Only the fields relevant
// to the chosen method are inspected.
type PaymentRequest struct {
    Method     model.PaymentMethod `json:"payment_method"`
    CardNumber string              `json:"card_number,omitempty"`
    CardHolder string              `json:"card_holder,omitempty"`
    ExpiryDate string              `json:"expiry_date,omitempty"`
    CVV        string              `json:"cvv,omitempty"`
    UPIID      string              `json:"upi_id,omitempty"`
    BankName   string              `json:"bank_name,omitempty"`
    WalletType string              `json:"wallet_type,omitempty"`
}

// PaymentService stands in for a real payment gateway. Detail fields
// are validated syntactically only; the outcome of a valid submission
// is decided by a configurable failure probability so that gateway
// unreliability can be demonstrated and, in tests, pinned down.
type PaymentService struct {
    bookings    BookingStore
    failureRate float64
    random      func() float64
}

// NewPaymentService constructs a PaymentService. failureRate is the
// probability in [0, 1] that a valid payment is declined. random
// defaults to math/rand when nil; tests inject a deterministic source.
func NewPaymentService(bookings BookingStore, failureRate float64, random func() float64) *PaymentService {
    if bookings == nil {
        panic("nil store passed to NewPaymentService")
    }
    if random == nil {
        random = rand.Float64
    }
    return &PaymentService{bookings: bookings, failureRate: failureRate, random: random}
}

// Pay attempts to move a pending booking to a terminal payment state.
//
// An already-COMPLETED booking is returned unchanged so resubmitting a
// payment never reprocesses it; the fresh flag is false on that path so
// callers do not re-emit completion side effects. Validation failures
// leave the booking in its current state and are reported as
// *ValidationError. A valid submission is approved or declined per the
// failure probability; both outcomes are recorded under the store's
// exclusive-lock discipline. On decline ErrPaymentDeclined is returned
// together with the FAILED booking; the booking may be re-attempted.
// Seats stay reserved on decline.
//
// fresh is true only when this call transitioned the booking into
// COMPLETED.
func (s *PaymentService) Pay(ctx context.Context, userID, bookingID uint64, req PaymentRequest) (booking *model.Booking, fresh bool, err error) {
    if userID == 0 {
        return nil, false, ErrAuthenticationRequired
    }

    booking, err = s.bookings.GetByIDForUser(ctx, bookingID, userID)
    if err != nil {
        return nil, false, err
    }
    if booking.PaymentStatus == model.PaymentCompleted {
        return booking, false, nil
    }

    if !req.Method.Valid() {
        return nil, false, ErrInvalidRequest
    }
    if msgs := validatePayment(req); len(msgs) > 0 {
        return nil, false, &ValidationError{Messages: msgs}
    }

    approved := s.random() >= s.failureRate
    booking, err = s.bookings.SettlePayment(ctx, bookingID, userID, req.Method, newPaymentID(), approved)
    if err != nil {
        return nil, false, err
    }
    // A concurrent attempt may have completed the booking first; the
    // store then returns the terminal row regardless of our outcome.
    if booking.PaymentStatus == model.PaymentFailed {
        return booking, false, ErrPaymentDeclined
    }
    return booking, approved && booking.PaymentStatus == model.PaymentCompleted, nil
}

// newPaymentID generates a payment reference like "PAY3F0A9C21D4E5":
// the PAY prefix plus the first twelve hex digits of a UUID, uppercased.
func newPaymentID() string {
    hex := strings.ReplaceAll(uuid.NewString(), "-", "")
    return "PAY" + strings.ToUpper(hex[:12])
}

// validatePayment applies the per-method syntactic checks and returns
// the list of field errors, empty when the submission is well formed.
func validatePayment(req PaymentRequest) []string {
    var msgs []string
    switch req.Method {
    case model.MethodCreditCard, model.MethodDebitCard:
        number := strings.ReplaceAll(req.CardNumber, " ", "")
        if len(number) != 16 || !isDigits(number) {
            msgs = append(msgs, "Invalid card number. Must be 16 digits.")
        }
        if len(strings.TrimSpace(req.CardHolder)) < 3 {
            msgs = append(msgs, "Please enter card holder name.")
        }
        if len(req.ExpiryDate) != 5 {
            msgs = append(msgs, "Invalid expiry date. Format: MM/YY")
        }
        if len(req.CVV) != 3 || !isDigits(req.CVV) {
            msgs = append(msgs, "Invalid CVV. Must be 3 digits.")
        }
    case model.MethodUPI:
        if req.UPIID == "" || !strings.Contains(req.UPIID, "@") {
            msgs = append(msgs, "Invalid UPI ID. Format: username@bank")
        }
    case model.MethodNetBanking:
        if strings.TrimSpace(req.BankName) == "" {
            msgs = append(msgs, "Please select a bank.")
        }
    case model.MethodWallet:
        if strings.TrimSpace(req.WalletType) == "" {
            msgs = append(msgs, "Please select a wallet.")
        }
    }
    return msgs
}

func isDigits(s string) bool {
    if s == "" {
        return false
    }
    for _, r := range s {
        if r < '0' || r > '9' {
            return false
        }
    }
    return true
}

// Package service implements the booking and payment domain logic on
// top of the repository layer. Failures are reported through the
// sentinel errors below plus *ValidationError; handlers translate them
// to HTTP responses with errors.Is / errors.As and never see raw SQL
// errors for expected conditions.
package service

import (
    "errors"
    "strings"
)

// ErrAuthenticationRequired is returned when an operation that needs a
// non-anonymous identity is invoked without one. Handlers translate
// this into an HTTP 401 response.
var ErrAuthenticationRequired = errors.New("authentication required")

// ErrInvalidRequest is returned for malformed input, e.g. a
// non-positive seat count or an unknown payment method.
var ErrInvalidRequest = errors.New("invalid request")

// ErrInsufficientSeats is returned when the requested seat count
// exceeds the show's availability before any lock is taken.
var ErrInsufficientSeats = errors.New("not enough seats available")

// ErrSeatsNoLongerAvailable is returned when the availability re-check
// under the row lock fails: the request passed the pre-lock check but
// another booking won the race for the remaining seats.
var ErrSeatsNoLongerAvailable = errors.New("seats no longer available")

// ErrPaymentDeclined is returned when the simulated gateway declines a
// syntactically valid payment. The booking is left FAILED and may be
// re-attempted.
var ErrPaymentDeclined = errors.New("payment declined")

// ValidationError reports the field-level problems of a payment
// submission. The booking is left untouched when it is returned.
type ValidationError struct {
    Messages []string
}

// Error joins the field messages into a single string.
func (e *ValidationError) Error() string {
    return "payment validation failed: " + strings.Join(e.Messages, "; ")
}

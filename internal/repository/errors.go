// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// services and handlers to distinguish between different failure
// scenarios. For example, ErrSeatsTaken indicates that a booking lost
// the race for the last seats after acquiring the row lock, while
// ErrDuplicateShow signals a violation of the one-show-per
// (movie, theater, date, time) constraint.
package repository

import "errors"

// ErrMovieNotFound indicates that no movie exists with the given ID.
var ErrMovieNotFound = errors.New("movie not found")

// ErrTheaterNotFound indicates that no theater exists with the given ID.
var ErrTheaterNotFound = errors.New("theater not found")

// ErrShowNotFound indicates that no show exists with the given ID.
var ErrShowNotFound = errors.New("show not found")

// ErrBookingNotFound indicates that the booking does not exist or does
// not belong to the requesting user. Handlers should translate this
// into an HTTP 404 response; ownership failures are deliberately not
// distinguishable from missing rows.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatsTaken is returned when the availability re-check under the
// exclusive row lock fails, i.e. another booking consumed the seats
// between the caller's pre-check and the lock acquisition.
var ErrSeatsTaken = errors.New("seats no longer available")

// ErrDuplicateShow is returned when inserting a show that collides with
// an existing (movie, theater, date, time) tuple. Handlers should
// translate this into an HTTP 409 response.
var ErrDuplicateShow = errors.New("show already scheduled for this slot")

package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Show represents a scheduled screening of a movie at a theater.
// At most one show may exist per (movie, theater, date, time) tuple;
// the database enforces this with a unique key.
//
// AvailableSeats starts at the theater's capacity and is decremented
// only by the booking service inside a row-locked transaction, so
// 0 <= AvailableSeats <= capacity holds at all times.
//
// Fields:
//  ID             – primary key identifier.
//  MovieID        – movie being screened.
//  TheaterID      – theater hosting the screening.
//  ShowDate       – calendar date of the screening.
//  ShowTime       – start time in "HH:MM:SS" (DB TIME column).
//  Price          – per-seat price; bookings freeze it at creation time.
//  AvailableSeats – remaining seat inventory.
type Show struct {
    ID             uint64          // shows.id
    MovieID        uint64          // shows.movie_id
    TheaterID      uint64          // shows.theater_id
    ShowDate       time.Time       // shows.show_date
    ShowTime       string          // shows.show_time
    Price          decimal.Decimal // shows.price DECIMAL(8,2)
    AvailableSeats uint32          // shows.available_seats
}

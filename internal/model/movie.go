package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Genre is the closed set of movie genres.  The values are stored
// verbatim in the movies.genre column and exposed through the public
// API, so they must not be renamed once data exists.
type Genre string

// Supported genres.  SCI-FI keeps its hyphen for compatibility with
// the seeded catalog data.
const (
    GenreAction    Genre = "ACTION"
    GenreComedy    Genre = "COMEDY"
    GenreDrama     Genre = "DRAMA"
    GenreHorror    Genre = "HORROR"
    GenreRomance   Genre = "ROMANCE"
    GenreThriller  Genre = "THRILLER"
    GenreSciFi     Genre = "SCI-FI"
    GenreAnimation Genre = "ANIMATION"
)

// Genres lists every valid genre in display order.  Handlers use it to
// populate filter options and to validate admin input.
var Genres = []Genre{
    GenreAction, GenreComedy, GenreDrama, GenreHorror,
    GenreRomance, GenreThriller, GenreSciFi, GenreAnimation,
}

// Valid reports whether g is one of the declared genres.
func (g Genre) Valid() bool {
    for _, v := range Genres {
        if g == v {
            return true
        }
    }
    return false
}

// Movie represents a row in the `movies` table.  Identity is immutable;
// attributes change only through the admin endpoints.  Movies are never
// deleted in normal operation, they are deactivated via IsActive.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – movie title.
//  Description – synopsis shown on the detail page.
//  Genre       – one of the Genre constants.
//  DurationMin – running time in minutes (positive).
//  ReleaseDate – theatrical release date.
//  TrailerURL  – optional external trailer link.
//  Rating      – non-negative rating with one decimal place.
//  IsActive    – whether the movie is listed publicly.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Movie struct {
    ID          uint64          // movies.id
    Title       string          // movies.title
    Description string          // movies.description
    Genre       Genre           // movies.genre
    DurationMin uint32          // movies.duration_min
    ReleaseDate time.Time       // movies.release_date
    TrailerURL  *string         // movies.trailer_url (nullable)
    Rating      decimal.Decimal // movies.rating DECIMAL(3,1)
    IsActive    bool            // movies.is_active
    CreatedAt   time.Time       // movies.created_at
    UpdatedAt   time.Time       // movies.updated_at
}

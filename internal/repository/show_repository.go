// Package repository contains data access logic for show scheduling and
// listing. A Show is a screening of a movie at a theater on a specific
// date and time. Seat inventory on the show row is mutated exclusively
// by the booking repository inside row-locked transactions; this file
// only creates and reads shows.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
    db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *ShowRepo) DB() *sql.DB { return r.db }

// Create schedules a new show.  The seat inventory is seeded from the
// theater's capacity inside the same transaction so a concurrent
// capacity edit cannot produce an inconsistent counter.  It returns
// ErrMovieNotFound / ErrTheaterNotFound when a reference is dangling
// and ErrDuplicateShow when the (movie, theater, date, time) tuple is
// already taken.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    var exists bool
    if err := tx.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ?`, s.MovieID).Scan(&exists); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrMovieNotFound
        }
        return err
    }
    var capacity uint32
    if err := tx.QueryRowContext(ctx, `SELECT capacity FROM theaters WHERE id = ?`, s.TheaterID).Scan(&capacity); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return ErrTheaterNotFound
        }
        return err
    }

    const q = `INSERT INTO shows (movie_id, theater_id, show_date, show_time, price, available_seats)
               VALUES (?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        s.MovieID, s.TheaterID, s.ShowDate.Format("2006-01-02"), s.ShowTime, s.Price, capacity,
    )
    if err != nil {
        // MySQL 1062 = duplicate entry on the unique (movie, theater, date, time) key.
        if strings.Contains(strings.ToLower(err.Error()), "1062") {
            return ErrDuplicateShow
        }
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    s.ID = uint64(id)
    s.AvailableSeats = capacity

    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// UpdatePrice changes a show's per-seat price.  Existing bookings keep
// the total that was frozen when they were created.
func (r *ShowRepo) UpdatePrice(ctx context.Context, id uint64, price decimal.Decimal) error {
    res, err := r.db.ExecContext(ctx, `UPDATE shows SET price = ? WHERE id = ?`, price, id)
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        var exists bool
        if chkErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM shows WHERE id = ?`, id).Scan(&exists); chkErr != nil {
            if errors.Is(chkErr, sql.ErrNoRows) {
                return ErrShowNotFound
            }
            return chkErr
        }
    }
    return nil
}

// GetByID retrieves a show by its ID.  It returns ErrShowNotFound if
// there is no matching row.
func (r *ShowRepo) GetByID(ctx context.Context, id uint64) (*model.Show, error) {
    const q = `SELECT id, movie_id, theater_id, show_date, show_time, price, available_seats
               FROM shows WHERE id = ?`
    var s model.Show
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &s.ID, &s.MovieID, &s.TheaterID, &s.ShowDate, &s.ShowTime, &s.Price, &s.AvailableSeats,
    )
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrShowNotFound
    }
    if err != nil {
        return nil, err
    }
    return &s, nil
}

// ShowDetail is a show joined with its movie and theater names for
// list and detail responses.
type ShowDetail struct {
    ID             uint64          `json:"id"`
    MovieID        uint64          `json:"movie_id"`
    MovieTitle     string          `json:"movie_title"`
    TheaterID      uint64          `json:"theater_id"`
    TheaterName    string          `json:"theater_name"`
    Location       string          `json:"location"`
    ShowDate       string          `json:"show_date"`
    ShowTime       string          `json:"show_time"`
    Price          decimal.Decimal `json:"price"`
    AvailableSeats uint32          `json:"available_seats"`
}

const showDetailSelect = `SELECT s.id, s.movie_id, m.title, s.theater_id, t.name, t.location,
                                 DATE_FORMAT(s.show_date, '%Y-%m-%d'), TIME_FORMAT(s.show_time, '%H:%i'),
                                 s.price, s.available_seats
                          FROM shows s
                          JOIN movies m   ON m.id = s.movie_id
                          JOIN theaters t ON t.id = s.theater_id`

func (r *ShowRepo) queryDetails(ctx context.Context, q string, args ...any) ([]ShowDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]ShowDetail, 0)
    for rows.Next() {
        var d ShowDetail
        if err := rows.Scan(
            &d.ID, &d.MovieID, &d.MovieTitle, &d.TheaterID, &d.TheaterName, &d.Location,
            &d.ShowDate, &d.ShowTime, &d.Price, &d.AvailableSeats,
        ); err != nil {
            return nil, err
        }
        out = append(out, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ListAll returns every show joined with movie and theater details,
// ordered by date then time ascending.
func (r *ShowRepo) ListAll(ctx context.Context) ([]ShowDetail, error) {
    return r.queryDetails(ctx, showDetailSelect+` ORDER BY s.show_date, s.show_time`)
}

// ListByMovie returns all shows of one movie ordered by date then time
// ascending.  Past shows are included; the catalog treats show history
// as browsable.
func (r *ShowRepo) ListByMovie(ctx context.Context, movieID uint64) ([]ShowDetail, error) {
    return r.queryDetails(ctx, showDetailSelect+` WHERE s.movie_id = ? ORDER BY s.show_date, s.show_time`, movieID)
}

// GetDetail returns a single show with movie and theater names.  It
// returns ErrShowNotFound when no row matches.
func (r *ShowRepo) GetDetail(ctx context.Context, id uint64) (*ShowDetail, error) {
    details, err := r.queryDetails(ctx, showDetailSelect+` WHERE s.id = ?`, id)
    if err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return nil, ErrShowNotFound
    }
    return &details[0], nil
}

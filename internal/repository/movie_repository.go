// Package repository contains data access logic for the movie catalog.
// This file defines repository methods for movies. Movies are leaf data:
// nothing in the booking flow mutates them, so all methods here are
// either plain reads or admin-driven writes.
package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
)

// MovieRepo manages persistence for movies.
type MovieRepo struct {
    db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *MovieRepo) DB() *sql.DB { return r.db }

const movieCols = `id, title, description, genre, duration_min, release_date, trailer_url, rating, is_active, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
    var m model.Movie
    var trailer sql.NullString
    err := row.Scan(
        &m.ID, &m.Title, &m.Description, &m.Genre, &m.DurationMin,
        &m.ReleaseDate, &trailer, &m.Rating, &m.IsActive,
        &m.CreatedAt, &m.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    if trailer.Valid {
        t := trailer.String
        m.TrailerURL = &t
    }
    return &m, nil
}

// Create inserts a new movie and assigns the generated ID back to the
// struct.  Timestamps are populated by querying the inserted row so the
// caller sees the DB defaults.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
    const q = `INSERT INTO movies (title, description, genre, duration_min, release_date, trailer_url, rating, is_active)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        m.Title, m.Description, string(m.Genre), m.DurationMin,
        m.ReleaseDate.Format("2006-01-02"), m.TrailerURL, m.Rating, m.IsActive,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    const sel = `SELECT ` + movieCols + ` FROM movies WHERE id = ?`
    got, err := scanMovie(r.db.QueryRowContext(ctx, sel, m.ID))
    if err != nil {
        return err
    }
    *m = *got
    return nil
}

// Update rewrites a movie's mutable attributes.  Identity (the ID) is
// immutable.  ErrMovieNotFound is returned when no row matches.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
    const q = `UPDATE movies
               SET title = ?, description = ?, genre = ?, duration_min = ?,
                   release_date = ?, trailer_url = ?, rating = ?, is_active = ?
               WHERE id = ?`
    res, err := r.db.ExecContext(ctx, q,
        m.Title, m.Description, string(m.Genre), m.DurationMin,
        m.ReleaseDate.Format("2006-01-02"), m.TrailerURL, m.Rating, m.IsActive, m.ID,
    )
    if err != nil {
        return err
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        // Either the row is missing or nothing changed; disambiguate.
        var exists bool
        if chkErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ?`, m.ID).Scan(&exists); chkErr != nil {
            if errors.Is(chkErr, sql.ErrNoRows) {
                return ErrMovieNotFound
            }
            return chkErr
        }
    }
    return nil
}

// GetByID retrieves a movie by its ID.  It returns ErrMovieNotFound if
// there is no matching row.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
    const q = `SELECT ` + movieCols + ` FROM movies WHERE id = ?`
    m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrMovieNotFound
    }
    return m, err
}

// MovieQuery defines the filters accepted by ListActive.  Search is a
// case-insensitive substring match against title, description and
// genre; Genre is an exact-match filter applied on top of it.
type MovieQuery struct {
    Search string
    Genre  model.Genre
}

// ListActive returns all active movies matching the query, ordered by
// release date descending (newest first).  An empty query returns the
// whole active catalog.
func (r *MovieRepo) ListActive(ctx context.Context, q MovieQuery) ([]model.Movie, error) {
    where := []string{"is_active = 1"}
    args := []any{}

    if s := strings.TrimSpace(q.Search); s != "" {
        like := "%" + strings.ToLower(s) + "%"
        where = append(where, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(genre) LIKE ?)")
        args = append(args, like, like, like)
    }
    if q.Genre != "" {
        where = append(where, "genre = ?")
        args = append(args, string(q.Genre))
    }

    query := `SELECT ` + movieCols + ` FROM movies WHERE ` +
        strings.Join(where, " AND ") + ` ORDER BY release_date DESC`

    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Movie, 0)
    for rows.Next() {
        m, err := scanMovie(rows)
        if err != nil {
            return nil, err
        }
        out = append(out, *m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

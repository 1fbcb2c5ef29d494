package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
)

// TheaterRepo manages persistence for theaters.
type TheaterRepo struct {
    db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the given DB handle.
func NewTheaterRepo(db *sql.DB) *TheaterRepo { return &TheaterRepo{db: db} }

// Create inserts a new theater and assigns the generated ID back to
// the struct.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
    const q = `INSERT INTO theaters (name, location, capacity, description) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, t.Name, t.Location, t.Capacity, t.Description)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    return nil
}

// GetByID retrieves a theater by its ID.  It returns
// ErrTheaterNotFound if there is no matching row.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
    const q = `SELECT id, name, location, capacity, description FROM theaters WHERE id = ?`
    var t model.Theater
    err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.Location, &t.Capacity, &t.Description)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTheaterNotFound
    }
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// ListAll returns every theater ordered by name.
func (r *TheaterRepo) ListAll(ctx context.Context) ([]model.Theater, error) {
    const q = `SELECT id, name, location, capacity, description FROM theaters ORDER BY name`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    out := make([]model.Theater, 0)
    for rows.Next() {
        var t model.Theater
        if err := rows.Scan(&t.ID, &t.Name, &t.Location, &t.Capacity, &t.Description); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

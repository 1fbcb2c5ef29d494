// Package handler exposes HTTP handlers for both authenticated and public
// endpoints. This file defines handlers for the public catalog API. These
// routes allow unauthenticated users to browse movies and shows without
// requiring authentication. Inactive movies are filtered from responses.

package handler

import (
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
    "github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing. It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
    MovieRepo   *repository.MovieRepo   // provides access to the movie catalog
    ShowRepo    *repository.ShowRepo    // provides access to show listings
    TheaterRepo *repository.TheaterRepo // provides access to theater data
}

// PublicMovie represents a movie exposed via the public API. It
// contains only safe fields.
type PublicMovie struct {
    ID          uint64          `json:"id"`
    Title       string          `json:"title"`
    Description string          `json:"description"`
    Genre       model.Genre     `json:"genre"`
    DurationMin uint32          `json:"duration_min"`
    ReleaseDate string          `json:"release_date"`
    TrailerURL  *string         `json:"trailer_url,omitempty"`
    Rating      decimal.Decimal `json:"rating"`
}

func toPublicMovie(m model.Movie) PublicMovie {
    return PublicMovie{
        ID:          m.ID,
        Title:       m.Title,
        Description: m.Description,
        Genre:       m.Genre,
        DurationMin: m.DurationMin,
        ReleaseDate: m.ReleaseDate.Format(time.DateOnly),
        TrailerURL:  m.TrailerURL,
        Rating:      m.Rating,
    }
}

// GetMovies handles GET /v1/movies.  It returns all active movies,
// newest release first.  Two optional query parameters narrow the
// list: ?search= matches a case-insensitive substring of the title,
// description or genre, and ?genre= filters by exact genre.  An
// unknown genre value yields 400 rather than an empty list so typos
// are visible to the client.
func (h *PublicHandler) GetMovies(c echo.Context) error {
    q := repository.MovieQuery{Search: c.QueryParam("search")}
    if g := c.QueryParam("genre"); g != "" {
        genre := model.Genre(g)
        if !genre.Valid() {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown genre"})
        }
        q.Genre = genre
    }

    movies, err := h.MovieRepo.ListActive(c.Request().Context(), q)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]PublicMovie, 0, len(movies))
    for _, m := range movies {
        out = append(out, toPublicMovie(m))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out, "genres": model.Genres})
}

// GetMovie handles GET /v1/movies/:id.  It returns the movie together
// with all of its scheduled shows ordered by date and time, so the
// detail page can render show options in one round trip.
func (h *PublicHandler) GetMovie(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
    }
    ctx := c.Request().Context()

    movie, err := h.MovieRepo.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    shows, err := h.ShowRepo.ListByMovie(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "movie": toPublicMovie(*movie),
        "shows": shows,
    })
}

// GetShows handles GET /v1/shows.  It lists every show joined with
// movie and theater names, ordered by show date then time ascending.
func (h *PublicHandler) GetShows(c echo.Context) error {
    shows, err := h.ShowRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": shows, "total": len(shows)})
}

// GetShow handles GET /v1/shows/:id.  It returns a single show with
// movie and theater details, including the live seat availability the
// booking page needs.
func (h *PublicHandler) GetShow(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
    }
    detail, err := h.ShowRepo.GetDetail(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrShowNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// GetTheaters handles GET /v1/theaters.  It lists all theaters.
func (h *PublicHandler) GetTheaters(c echo.Context) error {
    theaters, err := h.TheaterRepo.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": theaters})
}

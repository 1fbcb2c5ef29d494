package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/movie-ticket-booking/internal/model"
    "github.com/iliyamo/movie-ticket-booking/internal/repository"
)

// AdminHandler bundles repositories for administrators to manage the
// catalog: movies, theaters and show schedules. These endpoints stand
// in for the seed/admin tooling that normally populates the catalog;
// routes are protected by the ADMIN role.
type AdminHandler struct {
    MovieRepo   *repository.MovieRepo
    TheaterRepo *repository.TheaterRepo
    ShowRepo    *repository.ShowRepo
}

// NewAdminHandler constructs an AdminHandler and panics if any
// dependency is nil.
func NewAdminHandler(movieRepo *repository.MovieRepo, theaterRepo *repository.TheaterRepo, showRepo *repository.ShowRepo) *AdminHandler {
    if movieRepo == nil || theaterRepo == nil || showRepo == nil {
        panic("nil repository passed to NewAdminHandler")
    }
    return &AdminHandler{MovieRepo: movieRepo, TheaterRepo: theaterRepo, ShowRepo: showRepo}
}

type movieReq struct {
    Title       string  `json:"title"`
    Description string  `json:"description"`
    Genre       string  `json:"genre"`
    DurationMin uint32  `json:"duration_min"`
    ReleaseDate string  `json:"release_date"` // YYYY-MM-DD
    TrailerURL  *string `json:"trailer_url"`
    Rating      string  `json:"rating"`
    IsActive    *bool   `json:"is_active"`
}

// parseMovie validates the request body and builds a model.Movie.
// Returned errors are user-facing messages.
func parseMovie(req movieReq) (*model.Movie, error) {
    title := strings.TrimSpace(req.Title)
    if title == "" {
        return nil, errors.New("title is required")
    }
    genre := model.Genre(strings.ToUpper(strings.TrimSpace(req.Genre)))
    if !genre.Valid() {
        return nil, errors.New("unknown genre")
    }
    if req.DurationMin == 0 {
        return nil, errors.New("duration must be positive")
    }
    release, err := time.Parse(time.DateOnly, req.ReleaseDate)
    if err != nil {
        return nil, errors.New("release_date must be YYYY-MM-DD")
    }
    rating := decimal.Zero
    if req.Rating != "" {
        rating, err = decimal.NewFromString(req.Rating)
        if err != nil || rating.IsNegative() {
            return nil, errors.New("rating must be a non-negative number")
        }
    }
    active := true
    if req.IsActive != nil {
        active = *req.IsActive
    }
    return &model.Movie{
        Title:       title,
        Description: req.Description,
        Genre:       genre,
        DurationMin: req.DurationMin,
        ReleaseDate: release,
        TrailerURL:  req.TrailerURL,
        Rating:      rating,
        IsActive:    active,
    }, nil
}

// CreateMovie handles POST /v1/admin/movies.
func (h *AdminHandler) CreateMovie(c echo.Context) error {
    var req movieReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    movie, err := parseMovie(req)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    if err := h.MovieRepo.Create(c.Request().Context(), movie); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create movie failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": movie.ID})
}

// UpdateMovie handles PUT /v1/admin/movies/:id.  The whole attribute
// set is replaced; identity is immutable.
func (h *AdminHandler) UpdateMovie(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
    }
    var req movieReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    movie, err := parseMovie(req)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }
    movie.ID = id
    if err := h.MovieRepo.Update(c.Request().Context(), movie); err != nil {
        if errors.Is(err, repository.ErrMovieNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update movie failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// CreateTheater handles POST /v1/admin/theaters.
func (h *AdminHandler) CreateTheater(c echo.Context) error {
    var req struct {
        Name        string `json:"name"`
        Location    string `json:"location"`
        Capacity    uint32 `json:"capacity"`
        Description string `json:"description"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Location) == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
    }
    if req.Capacity == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity must be positive"})
    }
    theater := &model.Theater{
        Name:        strings.TrimSpace(req.Name),
        Location:    strings.TrimSpace(req.Location),
        Capacity:    req.Capacity,
        Description: req.Description,
    }
    if err := h.TheaterRepo.Create(c.Request().Context(), theater); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create theater failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": theater.ID})
}

// CreateShow handles POST /v1/admin/shows.  The show's seat inventory
// is seeded from the theater's capacity; a duplicate
// (movie, theater, date, time) tuple yields 409.
func (h *AdminHandler) CreateShow(c echo.Context) error {
    var req struct {
        MovieID   uint64 `json:"movie_id"`
        TheaterID uint64 `json:"theater_id"`
        ShowDate  string `json:"show_date"` // YYYY-MM-DD
        ShowTime  string `json:"show_time"` // HH:MM
        Price     string `json:"price"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if req.MovieID == 0 || req.TheaterID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and theater_id are required"})
    }
    date, err := time.Parse(time.DateOnly, req.ShowDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_date must be YYYY-MM-DD"})
    }
    if _, err := time.Parse("15:04", req.ShowTime); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "show_time must be HH:MM"})
    }
    price, err := decimal.NewFromString(req.Price)
    if err != nil || price.IsNegative() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a non-negative number"})
    }

    show := &model.Show{
        MovieID:   req.MovieID,
        TheaterID: req.TheaterID,
        ShowDate:  date,
        ShowTime:  req.ShowTime + ":00",
        Price:     price,
    }
    if err := h.ShowRepo.Create(c.Request().Context(), show); err != nil {
        switch {
        case errors.Is(err, repository.ErrMovieNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
        case errors.Is(err, repository.ErrTheaterNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
        case errors.Is(err, repository.ErrDuplicateShow):
            return c.JSON(http.StatusConflict, echo.Map{"error": "show already scheduled for this movie, theater, date and time"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create show failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":              show.ID,
        "available_seats": show.AvailableSeats,
    })
}

// UpdateShowPrice handles PATCH /v1/admin/shows/:id/price.  Existing
// bookings keep their frozen totals.
func (h *AdminHandler) UpdateShowPrice(c echo.Context) error {
    id, err := pathID(c, "id")
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
    }
    var req struct {
        Price string `json:"price"`
    }
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    price, err := decimal.NewFromString(req.Price)
    if err != nil || price.IsNegative() {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a non-negative number"})
    }
    if err := h.ShowRepo.UpdatePrice(c.Request().Context(), id, price); err != nil {
        if errors.Is(err, repository.ErrShowNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update price failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

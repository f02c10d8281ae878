package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/movie-booking/internal/model"
	"github.com/cinetick/movie-booking/internal/repository"
)

// MovieHandler serves the movie catalog. Creation is admin only; listing
// is available to any authenticated user.
type MovieHandler struct {
	Movies *repository.MovieRepo
	Venues *repository.VenueRepo
}

// NewMovieHandler constructs a MovieHandler.
func NewMovieHandler(movies *repository.MovieRepo, venues *repository.VenueRepo) *MovieHandler {
	if movies == nil || venues == nil {
		panic("nil repository passed to NewMovieHandler")
	}
	return &MovieHandler{Movies: movies, Venues: venues}
}

// CreateMovie handles POST /v1/movies.
func (h *MovieHandler) CreateMovie(c echo.Context) error {
	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Director    string `json:"director"`
		Genre       string `json:"genre"`
		VenueID     uint64 `json:"venue_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" || body.VenueID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and venue_id are required"})
	}

	ctx := c.Request().Context()
	if _, err := h.Venues.GetByID(ctx, body.VenueID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check venue"})
	}

	m := &model.Movie{
		VenueID:     body.VenueID,
		Title:       body.Title,
		Description: body.Description,
		Director:    body.Director,
		Genre:       body.Genre,
	}
	if err := h.Movies.Create(ctx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create movie"})
	}
	return c.JSON(http.StatusCreated, movieView(m))
}

// ListMovies handles GET /v1/movies.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list movies"})
	}
	items := make([]echo.Map, 0, len(movies))
	for _, m := range movies {
		items = append(items, movieView(m))
	}
	return c.JSON(http.StatusOK, items)
}

func movieView(m *model.Movie) echo.Map {
	return echo.Map{
		"id":          m.ID,
		"venue_id":    m.VenueID,
		"title":       m.Title,
		"description": m.Description,
		"director":    m.Director,
		"genre":       m.Genre,
	}
}

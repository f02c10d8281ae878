package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/movie-booking/internal/engine"
	"github.com/cinetick/movie-booking/internal/model"
	"github.com/cinetick/movie-booking/internal/repository"
)

// ShowHandler serves show creation and the public seat availability view.
// Creating a show persists the catalog row and initializes the show's seat
// inventory in the reservation engine; the two must agree, so creation is
// refused when the engine already knows the show id.
type ShowHandler struct {
	Shows  *repository.ShowRepo
	Movies *repository.MovieRepo
	Engine *engine.Service
}

// NewShowHandler constructs a ShowHandler.
func NewShowHandler(shows *repository.ShowRepo, movies *repository.MovieRepo, eng *engine.Service) *ShowHandler {
	if shows == nil || movies == nil || eng == nil {
		panic("nil dependency passed to NewShowHandler")
	}
	return &ShowHandler{Shows: shows, Movies: movies, Engine: eng}
}

// CreateShow handles POST /v1/shows. Admin only. The request carries the
// movie, schedule, seat count and two-tier pricing; the seat layout is
// generated as rows of ten with the trailing premium_rows rows priced as
// premium.
func (h *ShowHandler) CreateShow(c echo.Context) error {
	var body struct {
		MovieID           uint64    `json:"movie_id"`
		StartsAt          time.Time `json:"starts_at"`
		EndsAt            time.Time `json:"ends_at"`
		TotalSeats        uint32    `json:"total_seats"`
		PremiumRows       uint32    `json:"premium_rows"`
		RegularPriceCents uint32    `json:"regular_price_cents"`
		PremiumPriceCents uint32    `json:"premium_price_cents"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if body.MovieID == 0 || body.TotalSeats == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id and total_seats are required"})
	}
	if !body.EndsAt.After(body.StartsAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ends_at must be after starts_at"})
	}

	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, body.MovieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check movie"})
	}

	s := &model.Show{
		MovieID:           body.MovieID,
		StartsAt:          body.StartsAt.UTC(),
		EndsAt:            body.EndsAt.UTC(),
		TotalSeats:        body.TotalSeats,
		PremiumRows:       body.PremiumRows,
		RegularPriceCents: body.RegularPriceCents,
		PremiumPriceCents: body.PremiumPriceCents,
	}
	if err := h.Shows.Create(ctx, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create show"})
	}

	layout := engine.GridLayout(int(s.TotalSeats), int(s.PremiumRows))
	pricing := engine.TierPricing{RegularCents: s.RegularPriceCents, PremiumCents: s.PremiumPriceCents}
	if err := h.Engine.InitializeShow(s.ID, layout, pricing); err != nil {
		if errors.Is(err, engine.ErrDuplicateShow) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "show already initialized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to initialize seats"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"id":          s.ID,
		"movie_id":    s.MovieID,
		"starts_at":   s.StartsAt.Format(time.RFC3339),
		"ends_at":     s.EndsAt.Format(time.RFC3339),
		"total_seats": s.TotalSeats,
	})
}

// ListShows handles GET /v1/shows, returning the schedule with live
// availability counts for shows the engine knows.
func (h *ShowHandler) ListShows(c echo.Context) error {
	shows, err := h.Shows.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list shows"})
	}
	items := make([]echo.Map, 0, len(shows))
	for _, s := range shows {
		item := echo.Map{
			"id":                  s.ID,
			"movie_id":            s.MovieID,
			"starts_at":           s.StartsAt.Format(time.RFC3339),
			"ends_at":             s.EndsAt.Format(time.RFC3339),
			"total_seats":         s.TotalSeats,
			"regular_price_cents": s.RegularPriceCents,
			"premium_price_cents": s.PremiumPriceCents,
		}
		if _, avail, err := h.Engine.Availability(s.ID); err == nil {
			item["available_seats"] = avail
		}
		items = append(items, item)
	}
	return c.JSON(http.StatusOK, items)
}

// ShowSeats handles GET /v1/shows/:id/seats. It returns the live seat map
// from the engine so clients see holds and bookings immediately.
func (h *ShowHandler) ShowSeats(c echo.Context) error {
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	seats, err := h.Engine.Seats(showID)
	if err != nil {
		if errors.Is(err, engine.ErrShowNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	total, available, err := h.Engine.Availability(showID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"show_id":   showID,
		"total":     total,
		"available": available,
		"seats":     seats,
	})
}

package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/movie-booking/internal/model"
	"github.com/cinetick/movie-booking/internal/repository"
)

// VenueHandler serves the admin venue catalog.
type VenueHandler struct {
	Venues *repository.VenueRepo
}

// NewVenueHandler constructs a VenueHandler.
func NewVenueHandler(venues *repository.VenueRepo) *VenueHandler {
	if venues == nil {
		panic("nil repository passed to NewVenueHandler")
	}
	return &VenueHandler{Venues: venues}
}

// CreateVenue handles POST /v1/venues. Admin only.
func (h *VenueHandler) CreateVenue(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
		City string `json:"city"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.City = strings.TrimSpace(body.City)
	if body.Name == "" || body.City == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city are required"})
	}

	v := &model.Venue{Name: body.Name, City: body.City}
	if err := h.Venues.Create(c.Request().Context(), v); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create venue"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":   v.ID,
		"name": v.Name,
		"city": v.City,
	})
}

// ListVenues handles GET /v1/venues.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	venues, err := h.Venues.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list venues"})
	}
	items := make([]echo.Map, 0, len(venues))
	for _, v := range venues {
		items = append(items, echo.Map{"id": v.ID, "name": v.Name, "city": v.City})
	}
	return c.JSON(http.StatusOK, items)
}

// GetVenue handles GET /v1/venues/:id.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid venue id"})
	}
	v, err := h.Venues.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch venue"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": v.ID, "name": v.Name, "city": v.City})
}

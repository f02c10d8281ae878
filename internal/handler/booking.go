package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/movie-booking/internal/engine"
	"github.com/cinetick/movie-booking/internal/model"
	"github.com/cinetick/movie-booking/internal/repository"
)

// BookingHandler exposes the reservation engine over HTTP: placing holds,
// confirming them into bookings and releasing them. All methods assume
// JWT authentication and role validation already ran in middleware. The
// engine is the arbiter of seat state; the booking repository only records
// the durable ledger.
type BookingHandler struct {
	Engine   *engine.Service
	Bookings *repository.BookingRepo
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(eng *engine.Service, bookings *repository.BookingRepo) *BookingHandler {
	if eng == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: eng, Bookings: bookings}
}

// HoldSeats handles POST /v1/shows/:id/hold. The body carries a "seats"
// array of seat codes. On success it returns the hold id the client must
// present to confirm or release, plus the expiry timestamp. A seat
// conflict is an immediate 409 naming the contested seats; no partial
// hold is ever created.
func (h *BookingHandler) HoldSeats(c echo.Context) error {
	requester, err := requesterFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	showID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
	}
	var body struct {
		Seats []string `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	hold, err := h.Engine.Hold(showID, requester, body.Seats)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"hold_id":    hold.ID,
		"show_id":    hold.ShowID,
		"seats":      hold.Seats,
		"expires_at": hold.ExpiresAt.Format(time.RFC3339),
	})
}

// ConfirmHold handles POST /v1/holds/:id/confirm. It commits the hold
// through the engine and then writes the booking to the durable ledger.
// The engine's booking is authoritative: a ledger write failure is logged
// but the client still receives the confirmed booking.
func (h *BookingHandler) ConfirmHold(c echo.Context) error {
	requester, err := requesterFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	holdID := c.Param("id")
	if holdID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hold id"})
	}

	booking, err := h.Engine.Confirm(c.Request().Context(), holdID, requester)
	if err != nil {
		return engineError(c, err)
	}

	rec := repository.BookingRecord{
		Booking: model.Booking{
			ID:               booking.ID,
			UserID:           requester.ID,
			ShowID:           booking.ShowID,
			TotalAmountCents: booking.TotalCents,
			CreatedAt:        booking.CreatedAt,
		},
	}
	for _, code := range booking.Seats {
		rec.Seats = append(rec.Seats, model.BookingSeat{
			BookingID:  booking.ID,
			SeatCode:   code,
			PriceCents: booking.SeatPrices[code],
		})
	}
	if err := h.Bookings.Create(c.Request().Context(), rec); err != nil {
		log.Printf("booking: ledger write failed for %s: %v", booking.ID, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":         booking.ID,
		"show_id":            booking.ShowID,
		"seats":              booking.Seats,
		"total_amount_cents": booking.TotalCents,
	})
}

// ReleaseHold handles DELETE /v1/holds/:id. Releasing an already terminal
// hold is a reported no-op, not an error.
func (h *BookingHandler) ReleaseHold(c echo.Context) error {
	requester, err := requesterFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	holdID := c.Param("id")
	if holdID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hold id"})
	}

	released, err := h.Engine.Release(holdID, requester)
	if err != nil {
		return engineError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"released": released})
}

// MyBookings handles GET /v1/my-bookings, listing the caller's confirmed
// bookings from the ledger.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	requester, err := requesterFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListByUser(c.Request().Context(), requester.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// engineError maps the engine's error taxonomy onto HTTP status codes.
// The specific kind is preserved in the response body; nothing is
// re-wrapped or retried here.
func engineError(c echo.Context, err error) error {
	var unavailable *engine.SeatUnavailableError
	var unknown *engine.UnknownSeatError
	switch {
	case errors.As(err, &unavailable):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       "seats unavailable",
			"unavailable": unavailable.Seats,
		})
	case errors.As(err, &unknown):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":   "unknown seats",
			"unknown": unknown.Seats,
		})
	case errors.Is(err, engine.ErrShowNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	case errors.Is(err, engine.ErrHoldNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "hold not found"})
	case errors.Is(err, engine.ErrHoldExpired):
		return c.JSON(http.StatusConflict, echo.Map{"error": "hold expired"})
	case errors.Is(err, engine.ErrHoldOwnership):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, engine.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}
}

package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinetick/movie-booking/internal/engine"
)

// requesterFrom extracts the authenticated identity injected by the JWT
// middleware. JSON numbers come back as float64 from jwt.MapClaims, so the
// user id may arrive under several types.
func requesterFrom(c echo.Context) (engine.Requester, error) {
	id, err := contextUserID(c)
	if err != nil {
		return engine.Requester{}, err
	}
	req := engine.Requester{ID: id}
	if email, ok := c.Get("email").(string); ok {
		req.Email = email
	}
	if role, ok := c.Get("role").(string); ok {
		req.Role = role
	}
	return req, nil
}

func contextUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric :id path parameter, rejecting zero.
func pathID(c echo.Context, name string) (uint64, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return n, nil
}

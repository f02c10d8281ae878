// Package engine implements the in-memory seat reservation core: per-show
// seat inventories, time-bounded holds and the commit path that turns an
// active hold into a permanent booking. All seat state lives in process
// memory and every mutation goes through an all-or-nothing group transition
// guarded by a per-show lock, so two requests racing for overlapping seats
// are linearized and exactly one of them wins.
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the engine. Handlers compare with errors.Is
// and translate them into HTTP status codes; the engine never retries or
// re-wraps them.
var (
	// ErrDuplicateShow is returned when Initialize is called twice for
	// the same show id.
	ErrDuplicateShow = errors.New("show already initialized")

	// ErrShowNotFound is returned when an operation references a show id
	// that was never initialized.
	ErrShowNotFound = errors.New("show not initialized")

	// ErrHoldNotFound is returned when a hold id is unknown or the hold
	// has already reached a terminal CONFIRMED/RELEASED state and is no
	// longer confirmable.
	ErrHoldNotFound = errors.New("hold not found")

	// ErrHoldExpired is returned when a hold's TTL has passed. The check
	// is lazy: it fires even if the background sweep has not run yet.
	ErrHoldExpired = errors.New("hold expired")

	// ErrHoldOwnership is returned when a confirm or release names a hold
	// that belongs to a different requester.
	ErrHoldOwnership = errors.New("hold belongs to another requester")

	// ErrInvalidRequest is returned for malformed input such as an empty
	// seat list or a zero show id.
	ErrInvalidRequest = errors.New("invalid request")
)

// UnknownSeatError reports seat codes that are not part of the show's
// layout. The codes are listed so the caller can name them in a response.
type UnknownSeatError struct {
	Seats []string
}

func (e *UnknownSeatError) Error() string {
	return fmt.Sprintf("unknown seats: %s", strings.Join(e.Seats, ","))
}

// SeatConflictError reports a failed group transition: every listed seat
// was not in the expected from-state and no seat was mutated.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats not in expected state: %s", strings.Join(e.Seats, ","))
}

// SeatUnavailableError is the hold-facing form of SeatConflictError: the
// listed seats were not FREE when the hold was requested.
type SeatUnavailableError struct {
	Seats []string
}

func (e *SeatUnavailableError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Seats, ","))
}

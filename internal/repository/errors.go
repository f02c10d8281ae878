// Package repository contains the MySQL data access layer backing the
// catalog (venues, movies, shows), user accounts and the durable booking
// ledger. Seat state itself lives in the in-memory reservation engine;
// these repositories only persist what must survive a restart. Sentinel
// errors let handlers distinguish failure kinds without inspecting driver
// errors.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Handlers
// translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering a user with an email that is
// already taken. Handlers translate it into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

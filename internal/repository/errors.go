// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto the right HTTP responses without string matching.
package repository

import "errors"

// ErrEventNotFound is returned when an event id does not exist or the
// event is still a draft. Handlers translate this into a 404 so draft
// events are indistinguishable from missing ones to the public.
var ErrEventNotFound = errors.New("event not found")

// ErrSoldOut is returned when a booking attempt finds no derived seats
// remaining. Handlers translate this into an HTTP 409 response.
var ErrSoldOut = errors.New("event sold out")

// ErrAlreadyBooked is returned when the user already holds a booking
// for the event. This is an idempotent rejection, not a fault: the
// caller's earlier booking still stands.
var ErrAlreadyBooked = errors.New("already booked")

// ErrInvalidRefresh is returned when a refresh token hash is unknown,
// revoked or expired. The three cases are deliberately collapsed so
// responses never reveal whether a token ever existed.
var ErrInvalidRefresh = errors.New("invalid refresh token")

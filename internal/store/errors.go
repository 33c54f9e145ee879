package store

import "errors"

// ErrNotFound is returned when the requested item or request does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyProcessed is returned when a payment request is already in a
// terminal state and cannot transition again.
var ErrAlreadyProcessed = errors.New("request already processed")
